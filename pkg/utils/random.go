package utils

import (
	"crypto/rand"
	"encoding/hex"
	"hash/fnv"
	"strconv"
)

// GenerateToken создает токен гостя для клиента, не приславшего свой
func GenerateToken() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random token: " + err.Error())
	}
	return "guest_" + hex.EncodeToString(b)
}

// ParseSeed превращает строку в зерно: число берется как есть, слово хешируется.
// Один и тот же текст всегда дает одно и то же зерно.
func ParseSeed(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
