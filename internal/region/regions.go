// Package region holds the prefecture tables and the optional presence and
// bounding-box lookups that feed the dashboard.
package region

import (
	"errors"
	"fmt"

	"github.com/jengzang/wildlife-bi-go/internal/spatial"
)

const (
	// Hokkaido is the only prefecture split into sub-areas
	Hokkaido = "北海道"
	// DefaultPrefecture is preselected in the UI
	DefaultPrefecture = "東京都"
	// DefaultHokkaidoPart is preselected when Hokkaido is chosen
	DefaultHokkaidoPart = "道央"
	// FallbackHalfDeg is the half-width of the box used when no bbox is configured
	FallbackHalfDeg = 0.8
)

// ErrUnknownRegion is returned for names outside the prefecture tables
var ErrUnknownRegion = errors.New("unknown region")

// Prefectures in JIS order
var Prefectures = []string{
	"北海道", "青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県", "岐阜県",
	"静岡県", "愛知県", "三重県", "滋賀県", "京都府", "大阪府", "兵庫県",
	"奈良県", "和歌山県", "鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県", "福岡県", "佐賀県", "長崎県",
	"熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

// HokkaidoParts are the sub-areas of Hokkaido
var HokkaidoParts = []string{"道南", "道央", "道北", "道東"}

// Species offered by the dashboard
var Species = []string{"熊", "鹿", "猪"}

// DefaultSpecies is preselected in the UI
const DefaultSpecies = "熊"

// prefectureCenters are prefectural office locations, except Hokkaido which
// uses the island's middle.
var prefectureCenters = map[string]spatial.Point{
	"北海道":  {Lat: 43.4000, Lon: 142.8000},
	"青森県":  {Lat: 40.8244, Lon: 140.7400},
	"岩手県":  {Lat: 39.7036, Lon: 141.1527},
	"宮城県":  {Lat: 38.2688, Lon: 140.8721},
	"秋田県":  {Lat: 39.7186, Lon: 140.1024},
	"山形県":  {Lat: 38.2404, Lon: 140.3633},
	"福島県":  {Lat: 37.7503, Lon: 140.4676},
	"茨城県":  {Lat: 36.3418, Lon: 140.4468},
	"栃木県":  {Lat: 36.5657, Lon: 139.8836},
	"群馬県":  {Lat: 36.3907, Lon: 139.0604},
	"埼玉県":  {Lat: 35.8570, Lon: 139.6489},
	"千葉県":  {Lat: 35.6051, Lon: 140.1233},
	"東京都":  {Lat: 35.6895, Lon: 139.6917},
	"神奈川県": {Lat: 35.4478, Lon: 139.6425},
	"新潟県":  {Lat: 37.9026, Lon: 139.0236},
	"富山県":  {Lat: 36.6953, Lon: 137.2113},
	"石川県":  {Lat: 36.5947, Lon: 136.6256},
	"福井県":  {Lat: 36.0652, Lon: 136.2216},
	"山梨県":  {Lat: 35.6642, Lon: 138.5684},
	"長野県":  {Lat: 36.6513, Lon: 138.1810},
	"岐阜県":  {Lat: 35.3912, Lon: 136.7223},
	"静岡県":  {Lat: 34.9769, Lon: 138.3831},
	"愛知県":  {Lat: 35.1802, Lon: 136.9066},
	"三重県":  {Lat: 34.7303, Lon: 136.5086},
	"滋賀県":  {Lat: 35.0045, Lon: 135.8686},
	"京都府":  {Lat: 35.0214, Lon: 135.7556},
	"大阪府":  {Lat: 34.6863, Lon: 135.5200},
	"兵庫県":  {Lat: 34.6913, Lon: 135.1830},
	"奈良県":  {Lat: 34.6851, Lon: 135.8329},
	"和歌山県": {Lat: 34.2260, Lon: 135.1675},
	"鳥取県":  {Lat: 35.5039, Lon: 134.2377},
	"島根県":  {Lat: 35.4723, Lon: 133.0505},
	"岡山県":  {Lat: 34.6618, Lon: 133.9344},
	"広島県":  {Lat: 34.3966, Lon: 132.4596},
	"山口県":  {Lat: 34.1859, Lon: 131.4714},
	"徳島県":  {Lat: 34.0658, Lon: 134.5593},
	"香川県":  {Lat: 34.3401, Lon: 134.0434},
	"愛媛県":  {Lat: 33.8417, Lon: 132.7657},
	"高知県":  {Lat: 33.5597, Lon: 133.5311},
	"福岡県":  {Lat: 33.6064, Lon: 130.4181},
	"佐賀県":  {Lat: 33.2494, Lon: 130.2988},
	"長崎県":  {Lat: 32.7448, Lon: 129.8737},
	"熊本県":  {Lat: 32.7898, Lon: 130.7417},
	"大分県":  {Lat: 33.2382, Lon: 131.6126},
	"宮崎県":  {Lat: 31.9111, Lon: 131.4239},
	"鹿児島県": {Lat: 31.5602, Lon: 130.5581},
	"沖縄県":  {Lat: 26.2124, Lon: 127.6809},
}

var hokkaidoCenters = map[string]spatial.Point{
	"道南": {Lat: 41.9000, Lon: 140.6000},
	"道央": {Lat: 43.0000, Lon: 141.6000},
	"道北": {Lat: 44.4000, Lon: 142.3000},
	"道東": {Lat: 43.4000, Lon: 144.2000},
}

// IsPrefecture reports whether name is one of the 47 prefectures
func IsPrefecture(name string) bool {
	_, ok := prefectureCenters[name]
	return ok
}

// IsHokkaidoPart reports whether name is a Hokkaido sub-area
func IsHokkaidoPart(name string) bool {
	_, ok := hokkaidoCenters[name]
	return ok
}

// IsSpecies reports whether name is an offered species
func IsSpecies(name string) bool {
	for _, s := range Species {
		if s == name {
			return true
		}
	}
	return false
}

// Key builds the lookup key: "<prefecture>" or "北海道|<part>".
// The part is ignored for every prefecture other than Hokkaido.
func Key(prefecture, part string) string {
	if prefecture != Hokkaido || part == "" {
		return prefecture
	}
	return prefecture + "|" + part
}

// Center returns the map center of a prefecture, or of a Hokkaido sub-area
// when one is given.
func Center(prefecture, part string) (spatial.Point, error) {
	if prefecture == Hokkaido && part != "" {
		p, ok := hokkaidoCenters[part]
		if !ok {
			return spatial.Point{}, fmt.Errorf("%w: %s|%s", ErrUnknownRegion, prefecture, part)
		}
		return p, nil
	}
	p, ok := prefectureCenters[prefecture]
	if !ok {
		return spatial.Point{}, fmt.Errorf("%w: %s", ErrUnknownRegion, prefecture)
	}
	return p, nil
}

// Label is the display name of a selection
func Label(prefecture, part string) string {
	if prefecture == Hokkaido && part != "" {
		return fmt.Sprintf("%s（%s）", prefecture, part)
	}
	return prefecture
}

// FallbackBBox is the center ± FallbackHalfDeg box
func FallbackBBox(prefecture, part string) (spatial.BoundingBox, error) {
	c, err := Center(prefecture, part)
	if err != nil {
		return spatial.BoundingBox{}, err
	}
	return spatial.Around(c, FallbackHalfDeg), nil
}
