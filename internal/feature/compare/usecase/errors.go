package usecase

import "errors"

var (
	// ErrSessionNotFound は比較セッションが存在しない場合のエラーです。
	ErrSessionNotFound = errors.New("compare session not found")
	// ErrInvalidWeight は負の重みなど不正な重みが指定された場合のエラーです。
	ErrInvalidWeight = errors.New("invalid weight")
	// ErrInvalidMetric は指標名が空の場合のエラーです。
	ErrInvalidMetric = errors.New("invalid metric")
)
