package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thruflo/stepviz/internal/heap"
	"github.com/thruflo/stepviz/internal/logging"
	"github.com/thruflo/stepviz/internal/tui"
)

var heapValues string

var heapCmd = &cobra.Command{
	Use:   "heap",
	Short: "Interactive min-heap session",
	Long: `Reads heap commands from stdin, one per line, and prints the backing
array and the tree after every change.

Commands:
  insert <n>...    add values, sifting each one up
  delete           remove the root
  peek             show the root
  heapify <n>...   replace the contents and rebuild bottom-up
  reset            remove everything
  show             print the heap
  help             list commands
  quit             leave`,
	Args: cobra.NoArgs,
	RunE: runHeap,
}

func init() {
	heapCmd.Flags().StringVarP(&heapValues, "values", "v", "", "initial heap content (default from config)")
	rootCmd.AddCommand(heapCmd)
}

func runHeap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	initial := cfg.Heap.Initial
	if heapValues != "" {
		initial, err = parseValues(heapValues)
		if err != nil {
			return fmt.Errorf("invalid --values: %w", err)
		}
	}

	return newHeapSession(cmd.OutOrStdout(), initial).Serve(cmd.InOrStdin())
}

const heapHelp = `insert <n>...   add values
delete          remove the root
peek            show the root
heapify <n>...  rebuild from values
reset           remove everything
show            print the heap
quit            leave`

// heapSession applies text commands to a MinHeap.
type heapSession struct {
	heap *heap.MinHeap
	out  io.Writer
	log  *logging.Logger
}

func newHeapSession(out io.Writer, initial []int) *heapSession {
	return &heapSession{
		heap: heap.New(initial...),
		out:  out,
		log:  logging.With("component", "heap"),
	}
}

// Serve prints the heap, then executes lines from r until quit or EOF.
// Command errors are printed and the session continues.
func (s *heapSession) Serve(r io.Reader) error {
	s.show()

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(s.out, "heap> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		quit, err := s.Exec(scanner.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the session should end.
func (s *heapSession) Exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, rest := strings.ToLower(fields[0]), strings.Join(fields[1:], " ")

	switch name {
	case "insert", "i":
		values, err := parseValues(rest)
		if err != nil {
			return false, err
		}
		for _, v := range values {
			s.heap.Insert(v)
		}
		s.log.Debug("inserted", "count", len(values), "len", s.heap.Len())
		s.show()

	case "delete", "d":
		root, err := s.heap.DeleteRoot()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "deleted %d\n", root)
		s.show()

	case "peek", "p":
		root, err := s.heap.Peek()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "min %d\n", root)

	case "heapify":
		values, err := parseValues(rest)
		if err != nil {
			return false, err
		}
		s.heap.Heapify(values...)
		s.log.Debug("heapified", "len", s.heap.Len())
		s.show()

	case "reset":
		s.heap.Reset()
		s.show()

	case "show", "s":
		s.show()

	case "help", "?":
		fmt.Fprintln(s.out, heapHelp)

	case "quit", "exit", "q":
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %q (try help)", name)
	}

	return false, nil
}

func (s *heapSession) show() {
	if s.heap.Len() == 0 {
		fmt.Fprintln(s.out, "heap is empty")
		return
	}
	fmt.Fprintf(s.out, "array: %v\n", s.heap.Values())
	for _, line := range tui.HeapTree(s.heap.Levels()) {
		fmt.Fprintln(s.out, line)
	}
}
