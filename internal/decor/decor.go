// Package decor supplies the presentation filler attached to product lists:
// placeholder stock images and fake prices. It exists so the recommendation
// core and its tests never depend on randomness.
package decor

import "math/rand"

// Provider yields one decoration pair per rendered product.
type Provider interface {
	Image() string
	Price() int
}

var stockImages = []string{
	"static/img/img_1.png",
	"static/img/img_2.png",
	"static/img/img_3.png",
	"static/img/img_4.png",
	"static/img/img_5.png",
	"static/img/img_6.png",
	"static/img/img_7.png",
	"static/img/img_8.png",
}

var prices = []int{40, 50, 60, 70, 100, 122, 106, 50, 30, 50}

// Random picks uniformly from the fixed image and price sets. These are
// explicitly not real prices; they are part of the page contract, nothing
// more.
type Random struct{}

func NewRandom() Random {
	return Random{}
}

func (Random) Image() string {
	return stockImages[rand.Intn(len(stockImages))]
}

func (Random) Price() int {
	return prices[rand.Intn(len(prices))]
}
