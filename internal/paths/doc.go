// Provides per-user paths used by zkbuild.
//
// The toolchain installer places the zkVM toolchain and its C cross-compiler
// under ~/.sp1. User settings follow XDG conventions on Linux and
// platform-native conventions on macOS and Windows, with "zkbuild" as the
// subdirectory under each base path.
package paths
