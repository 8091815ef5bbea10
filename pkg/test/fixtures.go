package test

import "azcli/pkg/model"

// SampleOptions returns the options described by SampleOptionsYAML.
func SampleOptions() *model.Options {
	return &model.Options{
		AzPath:       "/usr/bin/az",
		Subscription: "00000000-0000-0000-0000-000000000001",
		Output:       "json",
		Query:        "[].name",
		Verbose:      true,
	}
}

// SampleOptionsYAML returns a complete options file.
func SampleOptionsYAML() string {
	return `az_path: /usr/bin/az
subscription: 00000000-0000-0000-0000-000000000001
output: json
query: "[].name"
verbose: true
`
}

// InvalidOptionsYAML returns an options file that parses but fails validation on line 2.
func InvalidOptionsYAML() string {
	return `az_path: az
output: xml
`
}

// UnknownFieldOptionsYAML returns an options file with a key Options does not define.
func UnknownFieldOptionsYAML() string {
	return `az_path: az
location: westeurope
`
}
