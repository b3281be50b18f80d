package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"nestsummary/parallel"
)

// readRepeats reads a CSV whose header names the estimators and whose
// records are repeats.
func readRepeats(r io.Reader) ([]string, *mat.Dense, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("need a header and at least one repeat, got %d records", len(records))
	}
	names := records[0]
	values := mat.NewDense(len(records)-1, len(names), nil)
	for i, record := range records[1:] {
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d, column %q: %w", i+2, names[j], err)
			}
			values.Set(i, j, v)
		}
	}
	return names, values, nil
}

func readRepeatsFile(path string) ([]string, *mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	names, values, err := readRepeats(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, values, nil
}

type methodFile struct {
	name string
	path string
}

type methodRepeats struct {
	names   []string
	repeats [][]float64
}

// parseMethodArgs splits name=path arguments.
func parseMethodArgs(args []string) ([]methodFile, error) {
	methods := make([]methodFile, len(args))
	for i, arg := range args {
		name, path, ok := strings.Cut(arg, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("method %q is not of the form name=file.csv", arg)
		}
		methods[i] = methodFile{name: name, path: path}
	}
	return methods, nil
}

// readMethods reads every method's CSV concurrently. All files must name the
// same estimators in the same order.
func readMethods(ctx context.Context, methods []methodFile, opts parallel.Options) ([]string, [][][]float64, error) {
	read := func(_ context.Context, m methodFile) (methodRepeats, error) {
		names, values, err := readRepeatsFile(m.path)
		if err != nil {
			return methodRepeats{}, err
		}
		n, _ := values.Dims()
		repeats := make([][]float64, n)
		for i := range repeats {
			repeats[i] = mat.Row(nil, i, values)
		}
		return methodRepeats{names: names, repeats: repeats}, nil
	}
	results, err := parallel.Map(ctx, read, methods, opts)
	if err != nil {
		return nil, nil, err
	}
	names := results[0].names
	values := make([][][]float64, len(results))
	for i, result := range results {
		if strings.Join(result.names, "\x00") != strings.Join(names, "\x00") {
			return nil, nil, fmt.Errorf("method %q has estimators %v, want %v", methods[i].name, result.names, names)
		}
		values[i] = result.repeats
	}
	return names, values, nil
}
