package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command, args := os.Args[1], os.Args[2:]

	var err error
	switch command {
	case "ls", "list":
		err = cmdList(args, os.Stdout)
	case "show":
		err = cmdShow(args, os.Stdout)
	case "analyze":
		err = cmdAnalyze(args, os.Stdout)
	case "verify":
		err = cmdVerify(args, os.Stdout)
	case "snapshot":
		err = cmdSnapshot(args, os.Stdout)
	case "serve":
		err = cmdServe(args)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "topocat - Network topology catalog")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  topocat ls                     List catalogs and their topologies")
	fmt.Fprintln(w, "  topocat show <name>            Print a topology document")
	fmt.Fprintln(w, "  topocat analyze <name>         Summarize a topology's structure")
	fmt.Fprintln(w, "  topocat verify                 Build every topology of every catalog")
	fmt.Fprintln(w, "  topocat snapshot               Store every topology in the snapshot database")
	fmt.Fprintln(w, "  topocat serve                  Serve the read-only HTTP API")
	fmt.Fprintln(w, "  topocat config                 Print the effective configuration")
	fmt.Fprintln(w, "  topocat help                   Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common flags:")
	fmt.Fprintln(w, "  --catalog NAME     restrict to one catalog")
	fmt.Fprintln(w, "  --format FORMAT    json or yaml")
	fmt.Fprintln(w, "  --topology-dir DIR load topology documents as the \"files\" catalog")
	fmt.Fprintln(w, "  --config PATH      config file (default: discovered)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  topocat ls --catalog nat")
	fmt.Fprintln(w, "  topocat show nat4 --format yaml")
	fmt.Fprintln(w, "  topocat show simplest_topo --catalog balancer")
	fmt.Fprintln(w, "  topocat show nat4 --snapshot")
	fmt.Fprintln(w, "  topocat analyze nat4 --from l1 --to h1")
	fmt.Fprintln(w, "  topocat serve --addr :8080 --topology-dir ./topologies --watch")
}
