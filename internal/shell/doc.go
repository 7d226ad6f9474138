// SPDX-License-Identifier: MPL-2.0

// Package shell runs the handful of external commands vkvia needs (package
// manager queries, the loader cache, SDK sample programs) through the
// mvdan/sh interpreter, so pipelines behave the same on every host and no
// system /bin/sh is required.
package shell
