// Package etag вычисляет отпечатки ресурсов для условных запросов.
package etag

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Fingerprint возвращает детерминированный отпечаток канонического
// JSON-представления сущности или коллекции. Отпечаток считается от
// сериализованных байт, поэтому он стабилен между процессами и
// чувствителен к порядку элементов коллекции.
func Fingerprint(payload interface{}) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// Match разбирает значение заголовка If-Match / If-None-Match
// (список тегов через запятую, возможны кавычки и слабая форма W/)
// и сообщает, совпадает ли хоть один тег с current.
// Токен "*" совпадает с любым отпечатком.
func Match(header, current string) bool {
	if header == "" || current == "" {
		return false
	}

	for _, raw := range strings.Split(header, ",") {
		tag := strings.TrimSpace(raw)
		tag = strings.TrimPrefix(tag, "W/")
		tag = strings.Trim(tag, `"`)

		if tag == "*" || tag == current {
			return true
		}
	}

	return false
}
