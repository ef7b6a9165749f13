// Command eventcheck reads newline-delimited event documents from stdin and
// reports, per line, the decoded event type or why the line was rejected.
// It exits with status 1 if any line was rejected.
package main

import (
	"bufio"
	"ctchen222/Block-Battle/pkg/proto"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

func main() {
	failed, err := check(os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("eventcheck: %v", err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// check writes one report line per non-empty input line and returns the
// number of rejected documents.
func check(r io.Reader, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)

	failed := 0
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		ev, err := proto.Decode(line)
		switch {
		case err == nil:
			fmt.Fprintf(w, "%d\tok\t%s\n", n, ev.Type())
		case errors.Is(err, proto.ErrMalformedDocument):
			failed++
			fmt.Fprintf(w, "%d\tmalformed\t%v\n", n, err)
		default:
			failed++
			fmt.Fprintf(w, "%d\tschema\t%v\n", n, err)
		}
	}
	return failed, scanner.Err()
}
