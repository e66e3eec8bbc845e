package probe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pyneda/traversalprobe/lib"
)

// Verdict is an informational reading of what the file service did with the traversal name
type Verdict string

const (
	// VerdictStoredInBase means the token was readable from the storage base, the ../ prefix was neutralised
	VerdictStoredInBase Verdict = "stored-in-base"
	// VerdictNotReadable means the written file could not be read back from the storage base
	VerdictNotReadable Verdict = "not-readable"
)

func classify(token string, readStatus int, readBody string) Verdict {
	if readStatus >= 200 && readStatus < 300 && strings.TrimSpace(readBody) == token {
		return VerdictStoredInBase
	}
	return VerdictNotReadable
}

// Result holds everything observed during one run
type Result struct {
	RunID           string  `json:"run_id" yaml:"run_id"`
	Target          string  `json:"target" yaml:"target"`
	Token           string  `json:"token" yaml:"token"`
	UploadName      string  `json:"upload_name" yaml:"upload_name"`
	ReadPath        string  `json:"read_path" yaml:"read_path"`
	WriteStatus     int     `json:"write_status" yaml:"write_status"`
	WriteResponse   any     `json:"write_response" yaml:"write_response"`
	WriteDurationMs int64   `json:"write_duration_ms" yaml:"write_duration_ms"`
	ReadStatus      int     `json:"read_status" yaml:"read_status"`
	ReadBody        string  `json:"read_body" yaml:"read_body"`
	ReadDurationMs  int64   `json:"read_duration_ms" yaml:"read_duration_ms"`
	Verdict         Verdict `json:"verdict" yaml:"verdict"`
}

func (r Result) String() string {
	return fmt.Sprintf("run=%s token=%s write=%d read=%d verdict=%s", r.RunID, r.Token, r.WriteStatus, r.ReadStatus, r.Verdict)
}

func (r Result) Pretty() string {
	verdictColor := lib.Yellow
	if r.Verdict == VerdictStoredInBase {
		verdictColor = lib.Green
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", lib.Colorize("Run:", lib.Bold), r.RunID)
	fmt.Fprintf(&sb, "%s %s\n", lib.Colorize("Target:", lib.Bold), r.Target)
	fmt.Fprintf(&sb, "%s %s\n", lib.Colorize("Token:", lib.Bold), lib.Colorize(r.Token, lib.Cyan))
	fmt.Fprintf(&sb, "%s POST /%s name=%s -> %d (%dms)\n", lib.Colorize("Write:", lib.Bold), FileEndpoint, r.UploadName, r.WriteStatus, r.WriteDurationMs)
	fmt.Fprintf(&sb, "%s GET %s -> %d (%dms)\n", lib.Colorize("Read:", lib.Bold), r.ReadPath, r.ReadStatus, r.ReadDurationMs)
	fmt.Fprintf(&sb, "%s %s", lib.Colorize("Verdict:", lib.Bold), lib.Colorize(string(r.Verdict), verdictColor))
	return sb.String()
}

func (r Result) TableHeaders() []string {
	return []string{"Run", "Token", "Upload Name", "Write", "Read Path", "Read", "Verdict"}
}

func (r Result) TableRow() []string {
	return []string{
		r.RunID,
		r.Token,
		r.UploadName,
		strconv.Itoa(r.WriteStatus),
		r.ReadPath,
		strconv.Itoa(r.ReadStatus),
		string(r.Verdict),
	}
}
