/*
Package keyopts parses command line arguments against a declared set of
options, each identified by a key of the caller's choosing.

Example

Options keyed by an enum:

		type key int

		const (
			keyVerbose key = iota
			keyInclude
			keyOutput
		)

		var options = keyopts.New([]keyopts.KeyedDefinition[key]{
			keyopts.Define(keyVerbose, 'v', "verbose", 0, 0, "Print more."),
			keyopts.Define(keyInclude, 'I', "include", 1, keyopts.Unbounded, "Directories to search."),
			keyopts.Define(keyOutput, 'o', "output", 1, 1, "Output file.", "a.out"),
		})

		func main() {
			po, err := options.ParseOS()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if po.IsPresent(keyVerbose) {
				fmt.Println("includes:", po.Values(keyInclude))
			}
			fmt.Println("output:", po.LatestValue(keyOutput))
			fmt.Println("files:", po.TrailingValues())
		}

Usage:

		$ prog -v -I src vendor -o main main.c util.c
		includes: [src vendor]
		output: main
		files: [main.c util.c]

Parsing

Every argument starting with "-" is a flag: "--name" is a long flag, and
"-abc" is the short flags a, b and c in that order. There is no "--name=value"
form and no "--" terminator, and a value can never start with "-".

Any other argument is a value. Values go to the most recent flag until it has
MaxArity of them; the rest are held until the next flag, where they are an
error, or the end of the input, where they become trailing values. A flag with
fewer than MinArity values when the next flag or the end of the input is
reached is an error. A flag may appear any number of times, and each
appearance is a separate occurrence with its own values.

Options that do not appear in the input but declare defaults get one
occurrence holding the defaults.

Struct Tags

Definitions can also be derived from a struct with StructDefinitions or
BuildFromStruct, and the result written back with Decode. Struct tags look like
`opts:"key1,key2=value"`. For example:

		struct MyOpts {
			F1 string   `opts:"-"`                                // skip the field
			F2 string   `opts:"help=the value for F2"`            // custom help text
			F3 string   `opts:"help='to help, or not to help?'"`  // custom help text with a comma
			F4 string   `opts:"name=eff-four"`                    // explicitly set the long flag
			F5 string   `opts:"short=f"`                          // add a short flag (must be 1 rune)
			F6 []string `opts:"min=2,max=2"`                      // exactly two values per occurrence
			F7 []string `opts:"default='a b \"c d\"'"`            // defaults, split like a shell would
			F8 []string `opts:"args"`                             // receives the trailing values
		}

Bool fields take no values and are set to true when present. Slice fields
take one or more values per occurrence and receive every value of every
occurrence. All other fields take exactly one value and receive the latest.

Strings are set directly. Other primitives are parsed with strconv, and
time.Duration with time.ParseDuration. All other types must implement
encoding.TextUnmarshaler with the type itself or a pointer to the type as the
receiver; time.Time and net.IP already do.
*/
package keyopts
