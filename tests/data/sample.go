// SPDX-FileCopyrightText: 2024-2025 Rafael V. Volkmer <rafael.v.volkmer@gmail.com>
// SPDX-License-Identifier: MIT

package data

// Greeting builds the welcome line shown on first run.
func Greeting(name string) string {
	if name == "" {
		name = "stranger"
	}
	return "hello, " + name
}

func Add(a, b int) int {
	return a + b
}
