// Package textutil provides text normalization shared by packages that
// compare user-entered names.
package textutil
