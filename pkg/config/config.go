package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"azcli/pkg/log"
	"azcli/pkg/model"
	"azcli/pkg/system"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// optionsFile is the on-disk shape of an options file.
type optionsFile struct {
	Includes      []string `yaml:"includes,omitempty"` // Options files merged before this one
	model.Options `yaml:",inline"`
}

// LoadOptions reads, merges, defaults and validates the options file at filename.
func LoadOptions(filename string, logger log.Logger) (*model.Options, error) {
	opts, root, err := loadMerged(filename, logger)
	if err != nil {
		return nil, err
	}
	return finalize(opts, root)
}

// LoadOptionsWithEnv is LoadOptions followed by AZCLI_* environment overrides.
// An empty filename skips the file and starts from zero options.
func LoadOptionsWithEnv(filename string, logger log.Logger) (*model.Options, error) {
	var (
		opts model.Options
		root *yaml.Node
		err  error
	)
	if filename != "" {
		opts, root, err = loadMerged(filename, logger)
		if err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return finalize(opts, root)
}

func finalize(opts model.Options, root *yaml.Node) (*model.Options, error) {
	opts.ApplyDefaults()
	if errs := opts.Validate(); len(errs) > 0 {
		for i := range errs {
			errs[i].Line = keyLine(root, errs[i].Field)
		}
		return nil, errs
	}
	return &opts, nil
}

func loadMerged(filename string, logger log.Logger) (model.Options, *yaml.Node, error) {
	f, root, err := loadOptionsFile(filename)
	if err != nil {
		return model.Options{}, nil, err
	}

	if errs := validateIncludes(f.Includes); len(errs) > 0 {
		return model.Options{}, nil, errs
	}

	if len(f.Includes) == 0 {
		return f.Options, root, nil
	}

	visited := make(map[string]bool)
	opts, err := processIncludesRecursive(f, filename, visited, logger)
	if err != nil {
		return model.Options{}, nil, err
	}
	return opts, root, nil
}

// processIncludesRecursive merges f's includes depth first. visited holds the files
// on the current include chain only, so a file may be included from several branches.
func processIncludesRecursive(f optionsFile, baseFile string, visited map[string]bool, logger log.Logger) (model.Options, error) {
	absBase, err := filepath.Abs(baseFile)
	if err != nil {
		return model.Options{}, fmt.Errorf("failed to resolve absolute path for %s: %w", baseFile, err)
	}
	if visited[absBase] {
		return model.Options{}, fmt.Errorf("circular include detected: %s", baseFile)
	}
	visited[absBase] = true
	defer delete(visited, absBase)

	var result model.Options
	for _, includePath := range f.Includes {
		resolvedPath := resolveIncludePath(baseFile, includePath)

		included, _, err := loadOptionsFile(resolvedPath)
		if err != nil {
			return model.Options{}, fmt.Errorf("failed to load include '%s': %w", includePath, err)
		}

		opts := included.Options
		if len(included.Includes) > 0 {
			opts, err = processIncludesRecursive(included, resolvedPath, visited, logger)
			if err != nil {
				return model.Options{}, err
			}
		}

		result = mergeOptions(result, opts, logger)
	}

	// The including file has the highest priority
	return mergeOptions(result, f.Options, logger), nil
}

func loadOptionsFile(filename string) (optionsFile, *yaml.Node, error) {
	content, err := afero.ReadFile(system.AppFs, filename)
	if err != nil {
		return optionsFile{}, nil, err
	}

	var f optionsFile
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return optionsFile{}, nil, nil
		}
		return optionsFile{}, nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return optionsFile{}, nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return f, &root, nil
}

func resolveIncludePath(baseFile, includePath string) string {
	if filepath.IsAbs(includePath) {
		return includePath
	}
	return filepath.Join(filepath.Dir(baseFile), includePath)
}

// mergeOptions overlays every non-zero field of override onto base.
func mergeOptions(base, override model.Options, logger log.Logger) model.Options {
	result := base
	overrideString := func(name string, dst *string, val string) {
		if val == "" {
			return
		}
		if *dst != "" && *dst != val {
			logger.Warn("Option overridden", "option", name, "was", *dst, "now", val)
		}
		*dst = val
	}

	overrideString("az_path", &result.AzPath, override.AzPath)
	overrideString("subscription", &result.Subscription, override.Subscription)
	overrideString("output", &result.Output, override.Output)
	overrideString("query", &result.Query, override.Query)
	result.Debug = result.Debug || override.Debug
	result.Verbose = result.Verbose || override.Verbose

	return result
}

func validateIncludes(includes []string) model.ValidationErrors {
	var errs model.ValidationErrors
	for i, include := range includes {
		if strings.TrimSpace(include) == "" {
			errs = append(errs, model.ValidationError{Field: fmt.Sprintf("includes[%d]", i), Message: "include path cannot be empty"})
		}
	}
	return errs
}

// keyLine returns the line of the top-level key in the document, or 0 when the key
// is absent or the options did not come from a file.
func keyLine(root *yaml.Node, key string) int {
	if root == nil || len(root.Content) == 0 {
		return 0
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return 0
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value == key {
			return doc.Content[i].Line
		}
	}
	return 0
}
