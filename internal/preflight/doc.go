// Package preflight provides readiness checks for the external tools and
// filesystem paths vidcrop depends on.
//
// The CLI "vidcrop status" command renders these results. Checks never
// mutate anything; a failing check only explains what a crop would hit.
package preflight
