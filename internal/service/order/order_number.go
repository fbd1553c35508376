package order

import (
	"crypto/rand"
	"math/big"
)

const (
	orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderNumberLength   = 6
)

// newOrderNumber короткий человекочитаемый номер, уникальность проверяет БД.
func newOrderNumber() (string, error) {
	buf := make([]byte, orderNumberLength)
	limit := big.NewInt(int64(len(orderNumberAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = orderNumberAlphabet[n.Int64()]
	}
	return string(buf), nil
}
