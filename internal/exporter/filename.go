package exporter

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanedPrefix 输出文件名前缀
const CleanedPrefix = "cleaned_"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename 规范化上传文件名：NFKD 转 ASCII、去除路径分隔符与不安全字符、空白替换为下划线
func SecureFilename(name string) string {
	decomposed := norm.NFKD.String(name)
	var b strings.Builder
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// CleanedFilename 输出文件名：cleaned_<原文件名><原扩展名>
func CleanedFilename(original string) string {
	safe := SecureFilename(original)
	ext := filepath.Ext(safe)
	base := strings.TrimSuffix(safe, ext)
	return CleanedPrefix + base + ext
}
