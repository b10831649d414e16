package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/gosimple/slug"
)

// MakeSlug 生成带随机后缀的唯一 slug
// 标题可能重复，后缀避免 news.slug 唯一索引冲突。
func MakeSlug(title string) string {
	return fmt.Sprintf("%s-%s", slug.Make(title), randomSuffix())
}

// MakeFilename 基于原始文件名生成安全的存储对象名
func MakeFilename(originalName, ext string) string {
	return fmt.Sprintf("%s-%s.%s", slug.Make(originalName), randomSuffix(), ext)
}

func randomSuffix() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 失败在实践中不会发生，退化为固定值也仅影响唯一性
		return "00000000"
	}
	return hex.EncodeToString(buf)
}
