package lpformat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/airnet/netplan/planning/flow/lp"
)

// WriteFile writes p to path in CPLEX LP format.
func WriteFile(p *lp.Program, path string) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	prob := Load(p)
	defer prob.Delete()
	if err := prob.WriteLP(nil, path); err != nil {
		return fmt.Errorf("lpformat: %s: %w", p.Name, err)
	}
	return nil
}

// Export writes p in CPLEX LP format to w, preceded by a comment line with
// the program statistics.
func Export(p *lp.Program, w io.Writer) error {
	f, err := os.CreateTemp("", "netplan-*.lp")
	if err != nil {
		return err
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := WriteFile(p, path); err != nil {
		return err
	}
	f, err = os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\\ %s\n", p.Stats())
	if _, err := io.Copy(bw, f); err != nil {
		return err
	}
	return bw.Flush()
}
