package utils

import (
	"hash/fnv"
	"math/rand"

	"github.com/google/uuid"
)

// GenerateID создает уникальный ID (сессии, экипаж, лут)
func GenerateID() string {
	return uuid.NewString()
}

// StringToSeed превращает строку (токен сессии, имя мира) в детерминированный сид.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// RandRange возвращает случайное число из [min, max] включительно.
func RandRange(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return rng.Intn(max-min+1) + min
}
