package oplog

import (
	"encoding/json"
)

// NewJSONCodec creates a new codec using json encoding. Records encoded with
// it are human-readable, which makes json journals convenient for debugging
// and for tooling outside this module.
func NewJSONCodec() Codec {
	return &jsonCodecImpl{}
}

// jsonCodecImpl implements the Codec interface using json encoding
type jsonCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see oplog.Codec)
// --------------------------------------------------------------------------

func (c jsonCodecImpl) Encode(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}

func (c jsonCodecImpl) Decode(data []byte, rec *Record) error {
	return json.Unmarshal(data, rec)
}
