// Package build compiles programs for the zkVM target and collects the
// resulting ELF.
//
// A build flows through four stages. [Translate] turns [Options] into cargo
// arguments and the fixed environment the target needs. [NewCommand] pairs
// them with a working directory and a redirected target directory, or asks
// a container [Backend] for an equivalent command. [Runner] executes the
// command, relaying its output with an "[sp1]" tag. [CopyArtifact] then
// copies the ELF from cargo's output layout to the output directory.
//
// [Pipeline] strings the stages together. Nothing is cached between builds;
// every path is recomputed on each call.
//
// Example usage:
//
//	p := &build.Pipeline{
//	    Metadata: metadata.Loader{},
//	    Runner:   build.Runner{},
//	    Env:      build.ParseEnv(os.Environ()),
//	}
//	elf, err := p.Program(ctx, build.DefaultOptions(), "program")
//	if err != nil {
//	    return err
//	}
package build
