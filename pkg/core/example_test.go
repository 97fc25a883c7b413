package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/scanbit/scanbit/pkg/core"
)

// ExampleBuildTree shows the configuration tree a settings document becomes.
func ExampleBuildTree() {
	settings := core.Map{
		{Key: "Scanner", Value: core.Map{{Key: "use_scanner", Value: "grid"}}},
		{Key: "KeyValues", Value: core.Map{
			{Key: "verbose", Value: true},
			{Key: "bounds", Value: []any{-1.5, 2.0}},
		}},
	}
	root, err := core.BuildTree(settings)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(root)
	// Output:
	// Scanner:
	//   use_scanner: grid
	// KeyValues:
	//   verbose: true
	//   bounds: [-1.5, 2.0]
}

// ExampleBuildTree_error shows where conversion errors point.
func ExampleBuildTree_error() {
	_, err := core.BuildTree(core.Map{{Key: "Priors", Value: core.Map{{Key: "p", Value: []any{1, "two"}}}}})
	fmt.Println(err)
}

// ExampleRunScan runs the built-in engine over a one-parameter model.
func ExampleRunScan() {
	dir, _ := os.MkdirTemp("", "scanbit-example")
	defer os.RemoveAll(dir)

	settings, err := core.PrepareSettings(nil, core.PrepareOptions{
		Scanner:    "grid",
		ArgNames:   []string{"x"},
		Bounds:     [][2]float64{{-1, 1}},
		OutputPath: dir,
	})
	if err != nil {
		panic(err)
	}

	loglike := core.Positional("default", []string{"x"}, func(_ context.Context, args []float64) (any, error) {
		return -args[0] * args[0], nil
	})
	res, err := core.RunScan(context.Background(), core.NewSampler(1), settings, loglike)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%d samples, best x = %.2f\n", res.Samples, res.Best.Params["default::x"])
}
