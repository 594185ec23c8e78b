package shell

import (
	"errors"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
)

var errNoData = errors.New("no data in this line")

type shellcmd struct {
	cmd  string
	args []string
}

// extractFields splits a command line. The command name is lowercased;
// arguments keep their case. Quoted arguments may contain spaces.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	return &shellcmd{
		cmd:  strings.ToLower(fields[0]),
		args: fields[1:],
	}, nil
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "<word> or guess <word> - submit an answer\n")
	io.WriteString(w, "skip - skip the current word\n")
	io.WriteString(w, "status - show the current word, score and count\n")
	io.WriteString(w, "restart - play the round again\n")
	io.WriteString(w, "new - start another session and switch to it\n")
	io.WriteString(w, "sessions - list sessions\n")
	io.WriteString(w, "switch <id> - switch to another session\n")
	io.WriteString(w, "scores - best finished rounds\n")
	io.WriteString(w, "exit - quit\n")
}
