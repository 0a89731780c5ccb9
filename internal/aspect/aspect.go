// Package aspect holds the fixed table of 25 hotel-review aspects shared by the
// classifier vectors, the annotator vocabulary, and the aggregated summaries.
package aspect

import (
	"fmt"
	"strconv"
)

// ID is the 1-based aspect number. Classifier vectors carry aspect ID n at
// index n-1.
type ID int

// Count is the number of aspects every classifier vector must carry.
const Count = 25

const (
	Cleanliness ID = iota + 1
	Location
	RoomQuality
	SleepQuality
	Noise
	Staff
	ValueForMoney
	FoodQuality
	FoodVariety
	Pool
	SpaHammam
	Beach
	ChildFriendly
	WiFi
	Bathroom
	AirConditioning
	Reception
	Parking
	Security
	View
	RoomService
	Fitness
	MiniBar
	Balcony
	Activities
)

// Aspect describes one reviewed dimension of a stay.
type Aspect struct {
	ID ID
	// Key is the stable wire identifier used in files and prompts.
	Key string
	// Name is the English identifier.
	Name string
	// Display is the human-facing Turkish label used in summaries.
	Display string
	// Scope tells annotators what the aspect covers.
	Scope string
}

var table = [Count]Aspect{
	{Cleanliness, "temizlik", "cleanliness", "Temizlik", "sadece ODA temizliği (toz, çarşaf, oda kokusu); banyo/tuvalet temizliği 15 numarada"},
	{Location, "konum", "location", "Konum", "merkeze, toplu taşımaya, otogara, havalimanına yakınlık; çevre ve ulaşılabilirlik"},
	{RoomQuality, "oda_kalitesi", "room_quality", "Oda kalitesi", "oda büyüklüğü, ferahlık, havalandırma, mobilya ve oda durumu (yatak, banyo, gürültü hariç)"},
	{SleepQuality, "uyku_yatak_kalitesi", "sleep_quality", "Uyku ve yatak konforu", "yatak ve yastık rahatı, uyku konforu (ses hariç)"},
	{Noise, "gurultu", "noise", "Sessizlik / gürültü durumu", "dışarıdan, koridordan veya diğer odalardan gelen ses; sessizlik"},
	{Staff, "personel", "staff", "Personel", "çalışanların ilgisi, güler yüzü, yardımseverliği, profesyonelliği"},
	{ValueForMoney, "fiyat_performans", "value_for_money", "Fiyat-performans", "ödenen ücrete göre alınan hizmetin değeri"},
	{FoodQuality, "yemek_kalitesi", "food_quality", "Yemek kalitesi", "lezzet, tazelik, hijyen, sıcaklık, pişirme kalitesi"},
	{FoodVariety, "yemek_cesitliligi", "food_variety", "Yemek çeşitliliği", "menü ve büfe çeşit sayısı, seçenek genişliği"},
	{Pool, "havuz", "pool", "Havuz", "havuzların temizliği, sıcaklığı, boyutu, kalabalığı"},
	{SpaHammam, "spa_hamam", "spa_hammam", "Spa / hamam", "spa, hamam, sauna, buhar odası, termal havuz"},
	{Beach, "plaj", "beach", "Plaj", "plaj ve deniz kalitesi, kum/çakıl, denize giriş"},
	{ChildFriendly, "cocuk_dostu", "child_friendly", "Çocuk dostu", "çocuk havuzu, mini club, çocuk aktiviteleri, çocuklara uygunluk"},
	{WiFi, "wifi", "wifi", "Wi-Fi", "kablosuz internetin hızı, çekimi, var/yok durumu"},
	{Bathroom, "banyo_tuvalet", "bathroom", "Banyo ve tuvalet", "banyo temizliği ve genişliği, su basıncı ve sıcaklığı, havlu, klozet"},
	{AirConditioning, "klima_isitma", "air_conditioning", "Klima / ısıtma", "oda sıcaklığı, klima ve ısıtmanın çalışması"},
	{Reception, "resepsiyon", "reception", "Resepsiyon", "karşılama, giriş/çıkış süreci, telefonla ulaşılabilirlik, sorun çözme"},
	{Parking, "otopark", "parking", "Otopark", "park alanı, kapasite, ücret, yer bulma kolaylığı"},
	{Security, "guvenlik", "security", "Güvenlik", "otel ve çevrenin güvenliği, güvenlik görevlisi, kamera"},
	{View, "manzara", "view", "Manzara", "oda ve otel manzarası"},
	{RoomService, "oda_servisi", "room_service", "Oda servisi", "oda servisinin varlığı, hızı, gelen ürünlerin kalitesi"},
	{Fitness, "fitness_spor", "fitness", "Fitness / spor", "spor salonu ve fitness alanı"},
	{MiniBar, "mini_bar", "mini_bar", "Mini bar", "minibar ürün çeşitliliği, doluluğu, fiyat algısı"},
	{Balcony, "balkon_teras", "balcony", "Balkon / teras", "balkon veya terasın varlığı, genişliği, kullanışlılığı"},
	{Activities, "aktivite_zenginligi", "activities", "Aktivite olanakları", "aktiviteler, animasyon, canlı müzik, gece eğlencesi"},
}

var byKey = func() map[string]ID {
	m := make(map[string]ID, Count*2)
	for _, a := range table {
		m[a.Key] = a.ID
		m[a.Name] = a.ID
	}
	return m
}()

// Valid reports whether id names one of the 25 aspects.
func (id ID) Valid() bool {
	return id >= 1 && id <= Count
}

// Index returns the zero-based classifier vector position.
func (id ID) Index() int {
	return int(id) - 1
}

// String returns the wire key, or the bare number for unknown ids.
func (id ID) String() string {
	if !id.Valid() {
		return strconv.Itoa(int(id))
	}
	return table[id.Index()].Key
}

// Lookup returns the aspect for id.
func Lookup(id ID) (Aspect, bool) {
	if !id.Valid() {
		return Aspect{}, false
	}
	return table[id.Index()], true
}

// MustLookup returns the aspect for id and panics for unknown ids. Use only
// with the exported constants.
func MustLookup(id ID) Aspect {
	a, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("aspect: unknown id %d", id))
	}
	return a
}

// FromIndex maps a zero-based classifier vector position to an aspect ID.
func FromIndex(index int) (ID, bool) {
	id := ID(index + 1)
	return id, id.Valid()
}

// Parse resolves a decimal aspect number, a wire key, or an English name.
func Parse(value string) (ID, bool) {
	if n, err := strconv.Atoi(value); err == nil {
		id := ID(n)
		return id, id.Valid()
	}
	id, ok := byKey[value]
	return id, ok
}

// All returns the aspects in ascending ID order.
func All() []Aspect {
	out := make([]Aspect, Count)
	copy(out, table[:])
	return out
}
