// Command crackclient sends crack/crypt commands, read from a job file
// or stdin, to a crackserver instance over TCP and prints the
// translated responses.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/arbur/crackserver/internal/clientconfig"
	"github.com/arbur/crackserver/internal/crackclient"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, status, err := clientconfig.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(status)
	}

	var src *os.File = os.Stdin
	var jobFileContents []byte
	if cfg.JobFile != "" {
		f, err := os.Open(cfg.JobFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, clientconfig.JobFileErrorMessage(cfg.JobFile))
			return int(clientconfig.JobFileError)
		}
		defer f.Close()
		src = f

		contents, err := os.ReadFile(cfg.JobFile)
		if err == nil {
			jobFileContents = contents
		}
	}

	conn, err := net.Dial("tcp", "localhost:"+cfg.Port)
	if err != nil {
		fmt.Fprintln(os.Stderr, clientconfig.ConnectionErrorMessage(cfg.Port))
		return int(clientconfig.ConnectionError)
	}
	defer conn.Close()

	if err := crackclient.Run(conn, src, os.Stdout, jobFileContents); err != nil {
		if err == crackclient.ErrTerminated {
			fmt.Fprintln(os.Stderr, clientconfig.TerminatedMessage)
			return int(clientconfig.ConnectionTerminated)
		}
		fmt.Fprintln(os.Stderr, err)
		return int(clientconfig.ConnectionTerminated)
	}
	return int(clientconfig.OK)
}
