package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/op/go-logging"

	"github.com/chronos-tachyon/huffcode"
	"github.com/chronos-tachyon/huffcode/internal/container"
)

var log = logging.MustGetLogger("huffcode/main")

const progName = "huffcode"
const usageMessage = `
Usage: huffcode OPTIONS INPUT [OUTPUT]

Compresses INPUT into OUTPUT with a canonical Huffman code over bytes.
Either may be "-" for standard input or output; OUTPUT defaults to "-".

Options:
  --decompress, -d
	Decompress INPUT instead.
  --dump, -t
	Print the code table of INPUT instead of compressing it.
  --classical
	With --dump, print the classical decoding table instead of the
	canonical one.
  --debug
	Log debugging detail to standard error.
`

var ourFlags *flag.FlagSet

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, strings.TrimLeft(usageMessage, "\n"))
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-20s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

func openOutput(name string) (io.WriteCloser, error) {
	if name == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(name)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func dump(out io.Writer, data []byte, classical bool) error {
	tree, err := huffcode.BuildFromSymbols(data)
	if err != nil {
		return err
	}
	if tree.Empty() {
		log.Warningf("input is empty; the code table has no symbols")
	}
	if _, err := tree.Dump(out); err != nil {
		return err
	}
	if !classical {
		coder, err := huffcode.NewCanonicalCoder(tree.Lengths())
		if err != nil {
			return err
		}
		_, err = coder.Dump(out)
		return err
	}

	codes := tree.ClassicalCodes()
	order := make([]huffcode.Code, 0, len(codes))
	symbolByCode := make(map[huffcode.Code]byte, len(codes))
	for symbol, hc := range codes {
		order = append(order, hc)
		symbolByCode[hc] = symbol
	}
	sortCodes(order)
	bw := bufio.NewWriter(out)
	bw.WriteString("ClassicalCoder{\n")
	for _, hc := range order {
		fmt.Fprintf(bw, "\tDecode(%s) = %d\n", hc, symbolByCode[hc])
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func sortCodes(list []huffcode.Code) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Size != b.Size {
			return a.Size < b.Size
		}
		return a.Bits < b.Bits
	})
}

func run(decompress, dumpOnly, classical bool, inName, outName string) error {
	in, err := openInput(inName)
	if err != nil {
		return err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("%w: %w", huffcode.ErrSourceFailure, err)
	}

	out, err := openOutput(outName)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)

	switch {
	case dumpOnly:
		err = dump(bw, data, classical)
	case decompress:
		var plain []byte
		plain, err = container.Decompress(bytes.NewReader(data))
		if err == nil {
			_, err = bw.Write(plain)
		}
	default:
		err = container.Compress(bw, data)
	}
	if err != nil {
		out.Close()
		return err
	}

	if err := bw.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("%w: %w", huffcode.ErrSinkFailure, err)
	}
	return out.Close()
}

func main() {
	startLogging()

	ourFlags = flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.Usage = func() {}
	ourFlags.SetOutput(&nullWriter{})

	// Usage strings are hardcoded above.

	var decompress, dumpOnly, classical, debugLogging bool
	ourFlags.BoolVar(&decompress, "decompress", false, "")
	ourFlags.BoolVar(&decompress, "d", false, "")
	ourFlags.BoolVar(&dumpOnly, "dump", false, "")
	ourFlags.BoolVar(&dumpOnly, "t", false, "")
	ourFlags.BoolVar(&classical, "classical", false, "")
	ourFlags.BoolVar(&debugLogging, "debug", false, "")

	argErr := ourFlags.Parse(os.Args[1:])
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, strings.TrimLeft(usageMessage, "\n"))
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	if debugLogging {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	var inName, outName string
	switch ourFlags.NArg() {
	case 1:
		inName, outName = ourFlags.Arg(0), "-"
	case 2:
		inName, outName = ourFlags.Arg(0), ourFlags.Arg(1)
	default:
		usageErrorf("expected INPUT [OUTPUT], got %d arguments", ourFlags.NArg())
	}
	if decompress && dumpOnly {
		usageErrorf("--decompress and --dump are mutually exclusive")
	}
	if classical && !dumpOnly {
		usageErrorf("--classical requires --dump")
	}

	log.Debugf("input %q, output %q", inName, outName)
	if err := run(decompress, dumpOnly, classical, inName, outName); err != nil {
		exitError(err)
	}
}
