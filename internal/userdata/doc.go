// Package userdata resolves the CLI's on-disk layout under ~/.extreg/,
// honouring EXTREG_* environment overrides for the home directory and the
// default module search path.
package userdata
