package service

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	pdf "github.com/ledongthuc/pdf"
)

// ErrUnsupportedDocument はテキストを取り出せない形式のファイル
var ErrUnsupportedDocument = errors.New("unsupported document type")

// DocumentText はアップロードされたファイルの中身から形式を判定し、プレーンテキストを取り出します。
// 対応形式は PDF とテキスト系（text/plain を親に持つもの）です。
func DocumentText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty document: %w", ErrUnsupportedDocument)
	}

	mtype := mimetype.Detect(data)
	if mtype.Is("application/pdf") {
		return extractPDFText(data)
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return collapseWhitespace(string(data)), nil
		}
	}
	return "", fmt.Errorf("%s: %w", mtype.String(), ErrUnsupportedDocument)
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes は文字単位で limit 文字までに切り詰めます
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
