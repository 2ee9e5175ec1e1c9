package models

// Category, sunucuların gruplandığı dizin kategorisi (Gaming, Music, ...).
// Kategoriler seed migration ile gelir; API üzerinden oluşturulmaz.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IconURL     *string `json:"icon_url"`
}
