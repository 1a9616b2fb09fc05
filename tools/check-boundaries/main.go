// Command check-boundaries validates the package layering: face data and
// error types sit at the bottom, rendering above them, the drivers above
// that, and nothing may reach back down the other way.
package main

import (
	"flag"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const modulePrefix = "github.com/purrgress/purrgress/"

var (
	verbose = flag.Bool("verbose", false, "Verbose output")
	strict  = flag.Bool("strict", false, "Warn about imports outside the allowed list")
)

// BoundaryRule pins what a package may and may not import.
type BoundaryRule struct {
	Package     string
	AllowedDeps []string
	Forbidden   []string
	Description string
}

var boundaryRules = []BoundaryRule{
	{
		Package:     "pkg/errors",
		AllowedDeps: []string{},
		Forbidden:   []string{"pkg/"},
		Description: "The error taxonomy is the base of the tree and imports nothing internal",
	},
	{
		Package:     "pkg/logger",
		AllowedDeps: []string{},
		Forbidden:   []string{"pkg/"},
		Description: "Logging is ambient and must not depend on domain packages",
	},
	{
		Package:     "pkg/frames",
		AllowedDeps: []string{"pkg/errors"},
		Forbidden:   []string{"pkg/display", "pkg/render", "pkg/progress", "pkg/report", "pkg/stages", "pkg/anim"},
		Description: "Frame selection is pure data and math, no display knowledge",
	},
	{
		Package:     "pkg/display",
		AllowedDeps: []string{"pkg/errors", "pkg/logger"},
		Forbidden:   []string{"pkg/frames", "pkg/render", "pkg/progress", "pkg/report", "pkg/stages", "pkg/anim"},
		Description: "Environment probing must not know about frames or rendering",
	},
	{
		Package:     "pkg/render",
		AllowedDeps: []string{"pkg/errors", "pkg/logger", "pkg/display"},
		Forbidden:   []string{"pkg/frames", "pkg/progress", "pkg/report", "pkg/stages", "pkg/anim"},
		Description: "Backends paint lines, they never choose them",
	},
	{
		Package:     "pkg/progress",
		AllowedDeps: []string{"pkg/errors", "pkg/logger", "pkg/display", "pkg/frames", "pkg/render"},
		Forbidden:   []string{"pkg/report", "pkg/stages", "pkg/anim"},
		Description: "The bar composes the lower layers and stays independent of the other drivers",
	},
	{
		Package:     "pkg/report",
		AllowedDeps: []string{"pkg/errors", "pkg/logger", "pkg/frames"},
		Forbidden:   []string{"pkg/progress", "pkg/stages", "pkg/anim"},
		Description: "Step reporting is independent of the bar drivers",
	},
	{
		Package:     "pkg/stages",
		AllowedDeps: []string{"pkg/errors", "pkg/frames"},
		Forbidden:   []string{"pkg/progress", "pkg/report", "pkg/anim"},
		Description: "Multi-stage display is independent of the other drivers",
	},
	{
		Package:     "pkg/anim",
		AllowedDeps: []string{"pkg/frames", "pkg/render"},
		Forbidden:   []string{"pkg/progress", "pkg/report", "pkg/stages"},
		Description: "The welcome animation uses frames and a backend, nothing above",
	},
}

type BoundaryViolation struct {
	Package    string
	File       string
	Import     string
	Rule       BoundaryRule
	Severity   string
	LineNumber int
}

func main() {
	flag.Parse()

	fmt.Println("Purrgress Package Boundary Check")
	fmt.Println("================================")

	violations := []BoundaryViolation{}

	for _, rule := range boundaryRules {
		if *verbose {
			fmt.Printf("checking %s\n", rule.Package)
		}
		packageViolations, err := checkPackageBoundaries(rule)
		if err != nil {
			log.Printf("failed to check package %s: %v", rule.Package, err)
			continue
		}
		violations = append(violations, packageViolations...)
	}

	circularViolations, err := checkCircularDependencies()
	if err != nil {
		log.Printf("failed to check circular dependencies: %v", err)
	} else {
		violations = append(violations, circularViolations...)
	}

	errors := 0
	warnings := 0
	for _, violation := range violations {
		switch violation.Severity {
		case "error":
			fmt.Printf("❌ ERROR: %s\n", formatViolation(violation))
			errors++
		case "warning":
			fmt.Printf("⚠️  WARNING: %s\n", formatViolation(violation))
			warnings++
		}
		if *verbose {
			fmt.Printf("   File: %s:%d\n", violation.File, violation.LineNumber)
			fmt.Printf("   Rule: %s\n", violation.Rule.Description)
		}
	}

	fmt.Printf("\nSummary: %d errors, %d warnings\n", errors, warnings)
	if errors > 0 {
		fmt.Println("❌ Package boundary check failed.")
		os.Exit(1)
	}
	fmt.Println("✅ Package boundaries hold.")
}

func checkPackageBoundaries(rule BoundaryRule) ([]BoundaryViolation, error) {
	var violations []BoundaryViolation

	err := filepath.WalkDir(rule.Package, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		fileViolations, err := checkFileImports(path, rule)
		if err != nil {
			return err
		}
		violations = append(violations, fileViolations...)
		return nil
	})

	return violations, err
}

func checkFileImports(filePath string, rule BoundaryRule) ([]BoundaryViolation, error) {
	var violations []BoundaryViolation

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, nil, parser.ImportsOnly)
	if err != nil {
		return violations, fmt.Errorf("failed to parse file %s: %w", filePath, err)
	}

	for _, importSpec := range file.Imports {
		importPath := strings.Trim(importSpec.Path.Value, `"`)
		if !strings.HasPrefix(importPath, modulePrefix) {
			continue
		}
		local := strings.TrimPrefix(importPath, modulePrefix)
		if local == rule.Package {
			continue
		}
		if violation := checkImportViolation(filePath, local, rule, fset.Position(importSpec.Pos()).Line); violation != nil {
			violations = append(violations, *violation)
		}
	}

	return violations, nil
}

func checkImportViolation(filePath, localImport string, rule BoundaryRule, lineNumber int) *BoundaryViolation {
	for _, forbidden := range rule.Forbidden {
		if strings.HasPrefix(localImport, forbidden) {
			return &BoundaryViolation{
				Package:    rule.Package,
				File:       filePath,
				Import:     localImport,
				Rule:       rule,
				Severity:   "error",
				LineNumber: lineNumber,
			}
		}
	}

	if *strict {
		for _, allowed := range rule.AllowedDeps {
			if strings.HasPrefix(localImport, allowed) {
				return nil
			}
		}
		return &BoundaryViolation{
			Package:    rule.Package,
			File:       filePath,
			Import:     localImport,
			Rule:       rule,
			Severity:   "warning",
			LineNumber: lineNumber,
		}
	}

	return nil
}

func checkCircularDependencies() ([]BoundaryViolation, error) {
	var violations []BoundaryViolation

	depGraph := make(map[string][]string)
	err := filepath.WalkDir("pkg", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}

		packagePath := filepath.Dir(path)
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return nil
		}

		for _, importSpec := range file.Imports {
			importPath := strings.Trim(importSpec.Path.Value, `"`)
			if strings.HasPrefix(importPath, modulePrefix+"pkg/") {
				local := strings.TrimPrefix(importPath, modulePrefix)
				depGraph[packagePath] = append(depGraph[packagePath], local)
			}
		}
		return nil
	})
	if err != nil {
		return violations, err
	}

	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	for pkg := range depGraph {
		if !visited[pkg] {
			if cycle := findCycle(pkg, depGraph, visited, recStack, nil); len(cycle) > 0 {
				violations = append(violations, BoundaryViolation{
					Package:  pkg,
					File:     pkg,
					Import:   strings.Join(cycle, " -> "),
					Severity: "error",
					Rule:     BoundaryRule{Description: "Circular dependency detected"},
				})
			}
		}
	}

	return violations, nil
}

func findCycle(pkg string, depGraph map[string][]string, visited, recStack map[string]bool, path []string) []string {
	visited[pkg] = true
	recStack[pkg] = true
	path = append(path, pkg)

	for _, dep := range depGraph[pkg] {
		if !visited[dep] {
			if cycle := findCycle(dep, depGraph, visited, recStack, path); len(cycle) > 0 {
				return cycle
			}
		} else if recStack[dep] {
			cycleStart := -1
			for i, p := range path {
				if p == dep {
					cycleStart = i
					break
				}
			}
			if cycleStart >= 0 {
				return append(path[cycleStart:], dep)
			}
		}
	}

	recStack[pkg] = false
	return nil
}

func formatViolation(violation BoundaryViolation) string {
	if violation.Rule.Description == "Circular dependency detected" {
		return fmt.Sprintf("Circular dependency: %s", violation.Import)
	}
	return fmt.Sprintf("Package %s imports forbidden dependency: %s",
		violation.Package, violation.Import)
}
