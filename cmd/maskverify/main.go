// Command maskverify is the verifier's CLI entry point: one subcommand
// per property (ni, sni, pini, freesni, ios, rp, rpe1, rpe2, rpecopy, rpc,
// cni, crp, crpc), each taking a compiled gadget plus the order(s) to
// check at, matching the teacher CLI's flag-per-subcommand dispatch
// style (see cmd/ntrucli).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"maskverify/circuit"
	"maskverify/coefffile"
	"maskverify/faultscenario"
	"maskverify/gauss"
	"maskverify/internal/telemetry"
	"maskverify/property"
	"maskverify/verifyerr"
)

// gadgetProvider is wired by a concrete textual-gadget parser supplied
// outside this repository (see circuit.Provider's doc comment); it is
// nil until one is linked in, at which point this var should be
// assigned from an init() in the linked package.
var gadgetProvider circuit.Provider

// faultInjector is wired the same way, by a concrete circuit.FaultInjector
// implementation, for the cni/crp/crpc subcommands.
var faultInjector circuit.FaultInjector

func usage() {
	fmt.Println(`usage: maskverify <property> -gadget <path> [options]

Subcommands:
  ni       -gadget <path> -t <int>              [-workers <int>] [-v]
  sni      -gadget <path> -t <int>              [-workers <int>] [-v]
  pini     -gadget <path> -t <int>              [-workers <int>] [-v]
  freesni  -gadget <path> -t <int>              [-workers <int>] [-v]
  ios      -gadget <path> -t <int>              [-workers <int>] [-v]
  rp       -gadget <path> -coeff-max <int>      [-workers <int>] [-v] [-out <path>]
  rpe1     -gadget <path> -t-output <int> -coeff-max <int> [-workers <int>] [-v]
  rpe2     -gadget <path> -coeff-max <int>      [-workers <int>] [-v]
  rpecopy  -gadget <path> -coeff-max <int>      [-workers <int>] [-v]
  rpc      -gadget <path> -t <int> -t-out <int> [-workers <int>] [-v]
  cni      -gadget <path> -t <int> -k <int>     [-workers <int>] [-v]
  crp      -gadget <path> -scenarios <path> -coeff-max <int> -k <int> -n-faultable <int>
           -p-fault <float> -p-leak <float>     [-workers <int>] [-v]
  crpc     -gadget <path> -scenarios <path> -coeff-max <int> -k <int> -n-faultable <int>
           -p-fault <float> -p-leak <float>     [-workers <int>] [-v]`)
	os.Exit(1)
}

func loadCircuit(path string) (*circuit.Circuit, error) {
	if gadgetProvider == nil {
		return nil, verifyerr.NewConfigError("load", "no circuit provider linked into this build")
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, verifyerr.NewConfigError("load", "reading %s: %v", path, err)
	}
	return gadgetProvider.Compile(src)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	runID := uuid.New()
	tl := telemetry.Log{}
	defer func(start time.Time) { tl.Track(start, "total") }(time.Now())

	switch os.Args[1] {
	case "ni":
		runOrderProperty(os.Args[2:], runID, &tl, property.NI)
	case "sni":
		runOrderProperty(os.Args[2:], runID, &tl, property.SNI)
	case "pini":
		runOrderProperty(os.Args[2:], runID, &tl, property.PINI)
	case "freesni":
		runOrderProperty(os.Args[2:], runID, &tl, property.FreeSNI)
	case "ios":
		runOrderProperty(os.Args[2:], runID, &tl, property.IOS)
	case "rp":
		runRP(os.Args[2:], runID, &tl)
	case "rpe1":
		runRPE1(os.Args[2:], runID, &tl)
	case "rpe2":
		runRPESimple(os.Args[2:], runID, &tl, property.RPE2)
	case "rpecopy":
		runRPESimple(os.Args[2:], runID, &tl, property.RPECopy)
	case "rpc":
		runRPC(os.Args[2:], runID, &tl)
	case "cni":
		runCNI(os.Args[2:], runID, &tl)
	case "crp":
		runCRP(os.Args[2:], runID, &tl)
	case "crpc":
		runCRPC(os.Args[2:], runID, &tl)
	default:
		usage()
	}
}

type orderPropertyFn func(c *circuit.Circuit, t, workers int, corrTable []gauss.CorrectionExpansion) property.Verdict

func runOrderProperty(args []string, runID uuid.UUID, tl *telemetry.Log, fn orderPropertyFn) {
	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	gadget := fs.String("gadget", "", "path to the compiled gadget source")
	t := fs.Int("t", 1, "order to verify at")
	workers := fs.Int("workers", 1, "parallel search workers")
	verbose := fs.Bool("v", false, "print phase timings")
	fs.Parse(args)

	start := time.Now()
	c, err := loadCircuit(*gadget)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	tl.Track(start, "load")
	printRunHeader(runID, c)

	// corrTable is nil here because nothing in this build ever compiles a
	// gadget with correction outputs: that placeholder-expansion path
	// (gauss.CorrectionExpansion) is only ever populated by a compiler
	// wired in behind circuit.Provider, which is out of scope for this
	// repository (see loadCircuit's comment on gadgetProvider). Reduction
	// is now wired into ni/sni/pini (property.reduceUniverse,
	// driver.Config.Reduction) and, for the internal-wire candidate pool
	// only (property.reduceUniverse), into freesni/ios regardless — a real circuit with
	// correction outputs would acquire its reduced, reconstructable form
	// the same way any other gadget does, through reduce.Reduce ahead of
	// the search, not through this table.
	start = time.Now()
	v := fn(c, *t, *workers, nil)
	tl.Track(start, os.Args[1])

	printVerdict(v)
	if *verbose {
		telemetry.WriteReport(os.Stdout, tl.Snapshot())
	}
	if !v.Holds {
		os.Exit(1)
	}
}

func printRunHeader(runID uuid.UUID, c *circuit.Circuit) {
	fmt.Printf("run %s (circuit %s, %d wires)\n", runID, circuit.Fingerprint(c), c.Length())
}

func printVerdict(v property.Verdict) {
	if v.Holds {
		fmt.Printf("holds (tuples checked: %d)\n", v.TuplesChecked)
		return
	}
	fmt.Printf("FAILS: counterexample %v (tuples checked: %d)\n", v.Counterexample, v.TuplesChecked)
}

// runRP, runRPE1, runRPESimple and runRPC below all pass corrTable=nil
// to their property call for the same reason as runOrderProperty: no
// in-repo compiler ever produces a circuit with correction outputs.
// Unlike ni/sni/pini/freesni/ios, these coefficient-counting properties
// also do not take a reduce.Data from property.reduceUniverse — their
// accumulator denominators are tied to the full, unreduced wire count,
// and reduce.Reconstruct's first-match-wins design cannot recover every
// distinct minimal failing tuple a coefficient needs, so wiring
// reduction in here would silently under-count and produce an
// optimistic bound instead of an exhaustive one. See DESIGN.md.
func runRP(args []string, runID uuid.UUID, tl *telemetry.Log) {
	fs := flag.NewFlagSet("rp", flag.ExitOnError)
	gadget := fs.String("gadget", "", "path to the compiled gadget source")
	coeffMax := fs.Int("coeff-max", 1, "maximum failing-tuple size to search")
	workers := fs.Int("workers", 1, "parallel search workers")
	out := fs.String("out", "", "coefficient file to write (optional)")
	verbose := fs.Bool("v", false, "print phase timings")
	fs.Parse(args)

	start := time.Now()
	c, err := loadCircuit(*gadget)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	tl.Track(start, "load")
	printRunHeader(runID, c)

	start = time.Now()
	res := property.RP(c, *coeffMax, *workers, nil)
	tl.Track(start, "rp")

	fmt.Printf("amplification order: %d (tuples checked: %d)\n", res.Accumulator.AmplificationOrder(), res.TuplesChecked)
	if *out != "" {
		block := coefffile.FromAccumulator(res.Accumulator)
		if err := coefffile.Write(*out, c.Length(), nil, block); err != nil {
			log.Fatalf("run %s: writing %s: %v", runID, *out, err)
		}
	}
	if *verbose {
		telemetry.WriteReport(os.Stdout, tl.Snapshot())
	}
}

func runRPE1(args []string, runID uuid.UUID, tl *telemetry.Log) {
	fs := flag.NewFlagSet("rpe1", flag.ExitOnError)
	gadget := fs.String("gadget", "", "path to the compiled gadget source")
	tOutput := fs.Int("t-output", 1, "output-share prefix size")
	coeffMax := fs.Int("coeff-max", 1, "maximum failing-tuple size to search")
	workers := fs.Int("workers", 1, "parallel search workers")
	verbose := fs.Bool("v", false, "print phase timings")
	fs.Parse(args)

	start := time.Now()
	c, err := loadCircuit(*gadget)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	tl.Track(start, "load")
	printRunHeader(runID, c)

	start = time.Now()
	res := property.RPE1(c, *tOutput, *coeffMax, *workers, nil)
	tl.Track(start, "rpe1")
	printSplitResult(res)
	if *verbose {
		telemetry.WriteReport(os.Stdout, tl.Snapshot())
	}
}

type rpeSimpleFn func(c *circuit.Circuit, coeffMax, workers int, corrTable []gauss.CorrectionExpansion) property.SplitCoeffResult

func runRPESimple(args []string, runID uuid.UUID, tl *telemetry.Log, fn rpeSimpleFn) {
	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	gadget := fs.String("gadget", "", "path to the compiled gadget source")
	coeffMax := fs.Int("coeff-max", 1, "maximum failing-tuple size to search")
	workers := fs.Int("workers", 1, "parallel search workers")
	verbose := fs.Bool("v", false, "print phase timings")
	fs.Parse(args)

	start := time.Now()
	c, err := loadCircuit(*gadget)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	tl.Track(start, "load")
	printRunHeader(runID, c)

	start = time.Now()
	res := fn(c, *coeffMax, *workers, nil)
	tl.Track(start, os.Args[1])
	printSplitResult(res)
	if *verbose {
		telemetry.WriteReport(os.Stdout, tl.Snapshot())
	}
}

func printSplitResult(res property.SplitCoeffResult) {
	fmt.Printf("I1 amplification order:  %d\n", res.I1.AmplificationOrder())
	fmt.Printf("I2 amplification order:  %d\n", res.I2.AmplificationOrder())
	fmt.Printf("union amplification order: %d\n", res.Union.AmplificationOrder())
	fmt.Printf("intersection amplification order: %d\n", res.Intersection.AmplificationOrder())
	fmt.Printf("tuples checked: %d\n", res.TuplesChecked)
}

func runRPC(args []string, runID uuid.UUID, tl *telemetry.Log) {
	fs := flag.NewFlagSet("rpc", flag.ExitOnError)
	gadget := fs.String("gadget", "", "path to the compiled gadget source")
	t := fs.Int("t", 1, "internal tuple size to sweep up to")
	tOut := fs.Int("t-out", 0, "output-share prefix size")
	workers := fs.Int("workers", 1, "parallel search workers")
	verbose := fs.Bool("v", false, "print phase timings")
	fs.Parse(args)

	start := time.Now()
	c, err := loadCircuit(*gadget)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	tl.Track(start, "load")
	printRunHeader(runID, c)

	start = time.Now()
	res := property.RPC(c, *t, *tOut, *workers, nil)
	tl.Track(start, "rpc")
	fmt.Printf("amplification order: %d (tuples checked: %d)\n", res.Accumulator.AmplificationOrder(), res.TuplesChecked)
	if *verbose {
		telemetry.WriteReport(os.Stdout, tl.Snapshot())
	}
}

func runCNI(args []string, runID uuid.UUID, tl *telemetry.Log) {
	fs := flag.NewFlagSet("cni", flag.ExitOnError)
	gadget := fs.String("gadget", "", "path to the compiled gadget source")
	t := fs.Int("t", 1, "order to verify at")
	k := fs.Int("k", 1, "maximum simultaneous faults")
	workers := fs.Int("workers", 1, "parallel search workers")
	verbose := fs.Bool("v", false, "print phase timings")
	fs.Parse(args)

	if faultInjector == nil {
		log.Fatalf("run %s: no fault injector linked into this build", runID)
	}
	start := time.Now()
	c, err := loadCircuit(*gadget)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	tl.Track(start, "load")
	printRunHeader(runID, c)

	start = time.Now()
	v := property.CNI(c, faultInjector, *t, *k, *workers, nil)
	tl.Track(start, "cni")
	printVerdict(v)
	if *verbose {
		telemetry.WriteReport(os.Stdout, tl.Snapshot())
	}
	if !v.Holds {
		os.Exit(1)
	}
}

func runCRP(args []string, runID uuid.UUID, tl *telemetry.Log) {
	fs := flag.NewFlagSet("crp", flag.ExitOnError)
	gadget := fs.String("gadget", "", "path to the compiled gadget source")
	scenariosPath := fs.String("scenarios", "", "fault scenario list")
	coeffMax := fs.Int("coeff-max", 1, "maximum failing-tuple size to search")
	k := fs.Int("k", 1, "fault-combination size the scenarios were generated at")
	nFaultable := fs.Int("n-faultable", 1, "number of wires eligible to be faulted")
	pFault := fs.Float64("p-fault", 0.01, "fault probability")
	pLeak := fs.Float64("p-leak", 0.01, "leakage probability")
	workers := fs.Int("workers", 1, "parallel search workers")
	verbose := fs.Bool("v", false, "print phase timings")
	fs.Parse(args)

	if faultInjector == nil {
		log.Fatalf("run %s: no fault injector linked into this build", runID)
	}
	start := time.Now()
	c, err := loadCircuit(*gadget)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	scenarios, err := faultscenario.ReadFile(*scenariosPath)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	tl.Track(start, "load")
	printRunHeader(runID, c)

	start = time.Now()
	res, err := property.CRP(c, faultInjector, scenarios, *coeffMax, *k, *nFaultable, *workers, *pFault, *pLeak, 128, nil)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	tl.Track(start, "crp")
	fmt.Printf("epsilon=%v mu=%v gamma=%v\n", res.Bound.Epsilon, res.Bound.Mu, res.Bound.Gamma)
	if *verbose {
		telemetry.WriteReport(os.Stdout, tl.Snapshot())
	}
}

func runCRPC(args []string, runID uuid.UUID, tl *telemetry.Log) {
	fs := flag.NewFlagSet("crpc", flag.ExitOnError)
	gadget := fs.String("gadget", "", "path to the compiled gadget source")
	scenariosPath := fs.String("scenarios", "", "nested fault scenario list")
	coeffMax := fs.Int("coeff-max", 1, "maximum failing-tuple size to search")
	k := fs.Int("k", 1, "fault-combination size the scenarios were generated at")
	nFaultable := fs.Int("n-faultable", 1, "number of wires eligible to be faulted")
	pFault := fs.Float64("p-fault", 0.01, "fault probability")
	pLeak := fs.Float64("p-leak", 0.01, "leakage probability")
	workers := fs.Int("workers", 1, "parallel search workers")
	verbose := fs.Bool("v", false, "print phase timings")
	fs.Parse(args)

	if faultInjector == nil {
		log.Fatalf("run %s: no fault injector linked into this build", runID)
	}
	start := time.Now()
	c, err := loadCircuit(*gadget)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	ns, err := faultscenario.ReadNestedFile(*scenariosPath)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	tl.Track(start, "load")
	printRunHeader(runID, c)

	start = time.Now()
	res, err := property.CRPC(c, faultInjector, ns, *coeffMax, *k, *nFaultable, *workers, *pFault, *pLeak, 128, nil)
	if err != nil {
		log.Fatalf("run %s: %v", runID, err)
	}
	tl.Track(start, "crpc")
	for label, section := range res.BySection {
		fmt.Printf("%s: epsilon=%v mu=%v gamma=%v\n", label, section.Bound.Epsilon, section.Bound.Mu, section.Bound.Gamma)
	}
	if *verbose {
		telemetry.WriteReport(os.Stdout, tl.Snapshot())
	}
}
