package batch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gatekv/gatekv/cmd/util"
	"github.com/gatekv/gatekv/lib/dispatch"
	"github.com/gatekv/gatekv/lib/handler"
	"github.com/gatekv/gatekv/lib/op"
	"github.com/gatekv/gatekv/lib/oplog"
)

var (
	// BatchCmd runs a batch of validated operations through the dispatcher
	BatchCmd = &cobra.Command{
		Use:   "batch [file]",
		Short: "Runs a batch of operations through the dispatcher",
		Long: `Runs a batch of operations through the dispatcher.

The batch is read as JSON lines from the given file or from stdin, one
submission per line:

  {"name": "svc", "timeout_ms": 100, "op": "insert", "key": "language", "value": "Rust"}

Each submission is validated by the selected handler first. Vetoed
operations are skipped, failures are reported as inactive statuses.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBatch,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add flags
	key := "snapshot"
	BatchCmd.Flags().String(key, "gatekv.snap", util.WrapString("Snapshot file backing the store (empty for a purely in-memory store)"))
	key = "handler"
	BatchCmd.Flags().String(key, "default", util.WrapString("Validation handler to use (default, noop, rules)"))
	key = "require-name"
	BatchCmd.Flags().Bool(key, false, util.WrapString("Reject submissions with an empty name (rules handler only)"))
	key = "min-timeout"
	BatchCmd.Flags().Int(key, 0, util.WrapString("Reject submissions with a timeout below this bound in ms (rules handler only)"))
	key = "journal"
	BatchCmd.Flags().String(key, "", util.WrapString("Optional path to write the operation log of the batch to"))
	key = "journal-codec"
	BatchCmd.Flags().String(key, "binary", util.WrapString("Codec for the operation log (binary, json, gob)"))
	key = "show-metrics"
	BatchCmd.Flags().Bool(key, false, util.WrapString("Print dispatcher metrics after the batch"))
}

// submissionLine is the JSON-lines input format of a single submission
type submissionLine struct {
	Name      string `json:"name"`
	TimeoutMS int64  `json:"timeout_ms"`
	Op        string `json:"op"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	if err := util.SetupLogging(); err != nil {
		return err
	}

	// Read the batch
	input := io.Reader(os.Stdin)
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	subs, err := readSubmissions(input)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		fmt.Println("empty batch, nothing to do")
		return nil
	}

	// Assemble store, handler and dispatcher
	st, err := util.OpenStore()
	if err != nil {
		return err
	}

	h, err := util.GetHandler()
	if err != nil {
		return err
	}

	var journal *oplog.Journal
	if viper.GetString("journal") != "" {
		codec, err := getJournalCodec()
		if err != nil {
			return err
		}
		journal = oplog.NewJournal(codec)
	}

	dispatcher := dispatch.NewDispatcher(&dispatch.Options{Journal: journal})

	// Apply the batch
	results := dispatcher.RunWithStore(st, h, subs)

	// Print per-key statuses in input order, each key once with its final status
	printed := make(map[string]bool, len(results))
	for i := range subs {
		key := subs[i].Op.Key
		if printed[key] {
			continue
		}
		printed[key] = true
		fmt.Printf("%s: %s\n", key, results[key])
	}

	// Persist store and journal
	if err := util.PersistStore(st); err != nil {
		return err
	}
	if journal != nil {
		if err := writeJournal(journal, viper.GetString("journal")); err != nil {
			return err
		}
	}

	if viper.GetBool("show-metrics") {
		fmt.Println()
		dispatch.WriteMetrics(os.Stdout)
	}
	return nil
}

// readSubmissions parses the JSON-lines batch format. Blank lines are
// allowed, anything else must be a valid submission.
func readSubmissions(r io.Reader) ([]dispatch.Submission, error) {
	var subs []dispatch.Submission

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var parsed submissionLine
		if err := json.Unmarshal(line, &parsed); err != nil {
			return nil, fmt.Errorf("line %d: invalid submission: %w", lineNo, err)
		}
		opType, err := op.ParseOpType(parsed.Op)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		subs = append(subs, dispatch.Submission{
			Desc: handler.Descriptor{
				Name:    parsed.Name,
				Timeout: time.Duration(parsed.TimeoutMS) * time.Millisecond,
			},
			Op: op.Operation{
				Type:  opType,
				Key:   parsed.Key,
				Value: parsed.Value,
			},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}
	return subs, nil
}

// getJournalCodec creates the journal codec based on configuration
func getJournalCodec() (oplog.Codec, error) {
	switch viper.GetString("journal-codec") {
	case "binary":
		return oplog.NewBinaryCodec(), nil
	case "json":
		return oplog.NewJSONCodec(), nil
	case "gob":
		return oplog.NewGOBCodec(), nil
	default:
		return nil, fmt.Errorf("invalid journal codec %s", viper.GetString("journal-codec"))
	}
}

func writeJournal(journal *oplog.Journal, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create journal file %s: %w", path, err)
	}
	defer f.Close()

	if err := journal.Save(f); err != nil {
		return err
	}
	fmt.Printf("wrote %d journal records to %s\n", journal.Len(), path)
	return nil
}
