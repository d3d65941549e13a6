package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-uigen/pkg/ast"
	"github.com/goliatone/go-uigen/pkg/orchestrator"
	"github.com/goliatone/go-uigen/pkg/registry"
)

func main() {
	plan := flag.String("plan", "", "plan file (JSON or YAML)")
	current := flag.String("current", "", "current document file for patch plans")
	codeOut := flag.String("code", "", "write generated source to this file (stdout if empty)")
	htmlOut := flag.String("html", "", "write preview HTML to this file")
	catalog := flag.Bool("catalog", false, "print the component catalog and exit")
	flag.Parse()

	if *catalog {
		fmt.Print(registry.Default().Describe())
		return
	}
	if *plan == "" {
		log.Fatal("a -plan file is required (or -catalog)")
	}

	payload, err := readPlan(*plan)
	if err != nil {
		log.Fatalf("Failed to read plan: %v", err)
	}

	var doc *ast.Document
	if *current != "" {
		raw, err := os.ReadFile(*current)
		if err != nil {
			log.Fatalf("Failed to read current document: %v", err)
		}
		parsed, err := ast.ParseDocument(raw)
		if err != nil {
			log.Fatalf("Failed to parse current document: %v", err)
		}
		doc = &parsed
	}

	result, err := orchestrator.New().Run(context.Background(), doc, payload)
	if err != nil {
		log.Fatalf("Failed to run plan: %v", err)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	for _, patchErr := range result.PatchErrors {
		fmt.Fprintf(os.Stderr, "patch error: %s\n", patchErr)
	}
	if !result.Validation.Valid {
		for _, vErr := range result.Validation.Errors {
			fmt.Fprintf(os.Stderr, "invalid: %s\n", vErr)
		}
		os.Exit(1)
	}

	if *htmlOut != "" {
		if err := os.WriteFile(*htmlOut, result.HTML, 0o644); err != nil {
			log.Fatalf("Failed to write HTML: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Preview written to %s\n", *htmlOut)
	}

	if *codeOut != "" {
		if err := os.WriteFile(*codeOut, []byte(result.Code), 0o644); err != nil {
			log.Fatalf("Failed to write code: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Code written to %s\n", *codeOut)
	} else {
		fmt.Println(result.Code)
	}
}

// readPlan loads a plan file, converting YAML to JSON when needed so the
// orchestrator only ever sees JSON.
func readPlan(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var decoded any
		if err := yaml.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("parse YAML plan: %w", err)
		}
		return json.Marshal(decoded)
	}
	return raw, nil
}
