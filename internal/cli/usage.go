package cli

const usage = `Usage:
  usingfmt format FILE [--write] [options]
  usingfmt check FILE... [--format table|json|sarif] [options]

Commands:
  format  Organize the using directives of one file. Prints the result
          unless --write is given.
  check   Verify files are organized without writing. Exits 3 when any
          file needs formatting.

Options:
  --write                    Write the formatted result back to the file
  --format table|json|sarif  Check report format (default: table)
  --config PATH              Config file (default: nearest .usingfmt.toml,
                             .usingfmt.yml, .usingfmt.yaml or usingfmt.json)
  --diagnostics PATH         Analyzer diagnostics snapshot (YAML or JSON);
                             replaces the built-in analyzer
  --sort-order "A B C"       Namespace prefixes, highest priority first
                             (default: "System")
  --no-split                 No blank lines between namespace groups
  --keep-unused              Skip unused-directive removal
  --process-conditionals     Allow removal inside #if/#region blocks
  --static-placement MODE    bottom, intermixed or groupedWithNamespace
                             (default: bottom)
  -h, --help                 Show this help text
`

func Usage() string {
	return usage
}
