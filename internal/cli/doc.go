// Parses flags and configures logging for zkbuild.
//
// zkbuild accepts the following global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//
// Flags override build-time defaults set via linker flags. Defaults for the
// build subcommand are read from the user settings file and ZKBUILD_*
// environment variables before parsing, so explicit flags always win.
package cli
