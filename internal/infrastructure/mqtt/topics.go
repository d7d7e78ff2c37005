package mqtt

import "fmt"

// Topics builds openHASP command topic strings for a broker prefix.
// The zero value uses the conventional "hasp" prefix.
type Topics struct {
	Prefix string
}

func (t Topics) prefix() string {
	if t.Prefix == "" {
		return "hasp"
	}
	return t.Prefix
}

// CommandJSONL is the topic a plate listens on for raw JSONL page
// definitions, e.g. "hasp/plate01/command/jsonl".
func (t Topics) CommandJSONL(node string) string {
	return fmt.Sprintf("%s/%s/command/jsonl", t.prefix(), node)
}

// Command is the topic for a named plate command, e.g.
// "hasp/plate01/command/clearpage".
func (t Topics) Command(node, command string) string {
	return fmt.Sprintf("%s/%s/command/%s", t.prefix(), node, command)
}
