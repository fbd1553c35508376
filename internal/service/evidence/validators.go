package evidence

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"dispatch/internal/entities"
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func validateProof(proof entities.DeliveryProof) error {
	if !isValidID(proof.OrderID) {
		return ErrInvalidOrderID
	}
	if strings.TrimSpace(proof.RecipientName) == "" || strings.TrimSpace(proof.RecipientIDNumber) == "" {
		return ErrMissingRecipient
	}
	if len(proof.Signature) == 0 {
		return ErrBlankSignature
	}
	return nil
}

// maxSignatureSide предел сторон подписи, проверяется по заголовку до декодирования пикселей.
const maxSignatureSide = 4096

// signatureExtensions расширение объекта в хранилище по формату декодера.
var signatureExtensions = map[string]string{
	"png":  "png",
	"jpeg": "jpg",
}

// decodeSignature возвращает формат изображения. Пустая, нечитаемая или
// одноцветная подпись считается отсутствующей.
func decodeSignature(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrBlankSignature
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrBlankSignature
	}
	if _, ok := signatureExtensions[format]; !ok || cfg.Width <= 0 || cfg.Height <= 0 {
		return "", ErrBlankSignature
	}
	if cfg.Width > maxSignatureSide || cfg.Height > maxSignatureSide {
		return "", ErrSignatureTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrBlankSignature
	}

	bounds := img.Bounds()
	r0, g0, b0, a0 := img.At(bounds.Min.X, bounds.Min.Y).RGBA()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if r != r0 || g != g0 || b != b0 || a != a0 {
				return format, nil
			}
		}
	}
	return "", ErrBlankSignature
}
