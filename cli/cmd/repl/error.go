package repl

import "github.com/ardnew/octm/lang"

var (
	ErrOutOfBounds  = lang.NewError("history index out of bounds")
	ErrLoadHistory  = lang.NewError("load history")
	ErrWriteHistory = lang.NewError("write history")
)
