package handler

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gatekv/gatekv/lib/logging"
)

// --------------------------------------------------------------------------
// Default Handler
// --------------------------------------------------------------------------

// defaultHandler applies the base validation rules every descriptor must meet
type defaultHandler struct {
	log *zap.SugaredLogger
}

// NewDefaultHandler creates the standard validation handler. It admits a
// descriptor when the name is non-empty and the timeout is strictly positive.
func NewDefaultHandler() IHandler {
	return &defaultHandler{
		log: logging.GetLogger("handler"),
	}
}

func (h *defaultHandler) Handle(desc Descriptor) error {
	h.log.Debugf("handling descriptor %q", desc.Name)

	if desc.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidConfig)
	}
	if desc.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalidConfig, desc.Timeout)
	}
	return nil
}

// --------------------------------------------------------------------------
// Noop Handler
// --------------------------------------------------------------------------

// NewNoopHandler creates a handler that admits every descriptor. Useful for
// tests and for callers that gate execution elsewhere.
func NewNoopHandler() IHandler {
	return HandlerFunc(func(Descriptor) error {
		return nil
	})
}

// --------------------------------------------------------------------------
// Rule Handler
// --------------------------------------------------------------------------

// Rules configures a rule handler. The zero value admits every descriptor,
// each rule is opt-in.
type Rules struct {
	RequireName bool          // reject descriptors with an empty name
	MinTimeout  time.Duration // reject timeouts below this bound (0 = no bound)
}

// ruleHandler validates against a configurable rule set
type ruleHandler struct {
	rules Rules
	log   *zap.SugaredLogger
}

// NewRuleHandler creates a handler enforcing the given rules. Unlike the
// default handler, no rule is implied: descriptors only fail rules that were
// explicitly enabled.
func NewRuleHandler(rules Rules) IHandler {
	return &ruleHandler{
		rules: rules,
		log:   logging.GetLogger("handler"),
	}
}

func (h *ruleHandler) Handle(desc Descriptor) error {
	h.log.Debugf("handling descriptor %q", desc.Name)

	if h.rules.RequireName && desc.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidConfig)
	}
	if h.rules.MinTimeout > 0 && desc.Timeout < h.rules.MinTimeout {
		return fmt.Errorf("%w: timeout %v below minimum %v", ErrInvalidConfig, desc.Timeout, h.rules.MinTimeout)
	}
	return nil
}
