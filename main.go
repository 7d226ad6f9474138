// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/vkvia/vkvia/cmd/vkvia"

func main() {
	cmd.Execute()
}
