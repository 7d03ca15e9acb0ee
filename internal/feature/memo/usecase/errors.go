package usecase

import "errors"

var (
	// ErrMemoNotFound はメモが存在しない場合のエラーです。
	ErrMemoNotFound = errors.New("memo not found")
	// ErrInvalidCompanyID は company_id が不正な場合のエラーです。
	ErrInvalidCompanyID = errors.New("invalid company id")
	// ErrInvalidMemo は更新内容が不正な場合のエラーです。
	ErrInvalidMemo = errors.New("invalid memo")
)
