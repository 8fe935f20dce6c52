package util

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Options holds the compiler's parsed command-line configuration.
type Options struct {
	Src     string // Path to source file.
	Out     string // Path to output file. Defaults to "a.ll".
	Verbose bool   // Set by -vb; nothing reads it, so no statistics are printed.
	Tokens  bool   // Output the token stream and exit.
	Dump    bool   // Output a debug dump of the syntax tree and exit.
	LLVM    bool   // Emit LLVM IR to Out instead of only checking the program.
	Triple  string // LLVM target triple override; empty leaves the module without a target triple.
}

// ---------------------
// ----- Constants -----
// ---------------------

const appVersion = "spl compiler 1.0"

// ---------------------
// ----- functions -----
// ---------------------

// ParseArgs parses os.Args[1:] into an Options value.
func ParseArgs() (Options, error) {
	opt := Options{Out: "a.ll"}
	if len(os.Args) < 2 {
		return opt, nil
	}
	args := os.Args[1:]
	for i1 := 0; i1 < len(args); i1++ {
		switch args[i1] {
		case "-h", "--h", "-help", "--help":
			printHelp()
			os.Exit(0)
		case "-ll":
			opt.LLVM = true
		case "-o":
			if i1+1 >= len(args) || strings.HasPrefix(args[i1+1], "-") {
				return opt, fmt.Errorf("got flag %s but no argument", args[i1])
			}
			i1++
			opt.Out = args[i1]
		case "-target":
			if i1+1 >= len(args) || strings.HasPrefix(args[i1+1], "-") {
				return opt, fmt.Errorf("got flag %s but no argument", args[i1])
			}
			i1++
			opt.Triple = args[i1]
		case "-ts":
			opt.Tokens = true
		case "-d", "-dump":
			opt.Dump = true
		case "-v", "--v", "-version", "--version":
			fmt.Println(appVersion)
			os.Exit(0)
		case "-vb":
			opt.Verbose = true
		default:
			if strings.HasPrefix(args[i1], "-") {
				return opt, fmt.Errorf("unexpected flag: %s", args[i1])
			}
			opt.Src = args[i1]
		}
	}
	return opt, nil
}

// printHelp prints a helpful usage message to stdout.
func printHelp() {
	w := tabwriter.NewWriter(os.Stdout, 6, 1, 1, 0, 0)
	_, _ = fmt.Fprintln(w, "-h, -help\tPrints this help message and exits the application.")
	_, _ = fmt.Fprintln(w, "-ll\tLower the program to LLVM IR and write it to the output file.")
	_, _ = fmt.Fprintln(w, "-o\tPath of the output file. Defaults to a.ll.")
	_, _ = fmt.Fprintln(w, "-target\tLLVM target triple to record in the module. Defaults to none.")
	_, _ = fmt.Fprintln(w, "-ts\tOutput the token stream and exit.")
	_, _ = fmt.Fprintln(w, "-d, -dump\tOutput a debug dump of the parsed syntax tree and exit.")
	_, _ = fmt.Fprintln(w, "-v, -version\tPrints application version and exits the application.")
	_, _ = fmt.Fprintln(w, "-vb\tVerbose mode. Accepted but has no effect: no statistics are printed.")
	_ = w.Flush()
}
