package domain

// Product is a catalog entry as served by the backend API. It is consumed,
// never owned: the cart keeps its own snapshot of the display fields.
type Product struct {
	ID            int64            `json:"id"`
	CategoryID    int64            `json:"category_id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         float64          `json:"price"`
	Stock         int              `json:"stock"`
	MainPhotoURL  string           `json:"main_photo_url"`
	InstagramLink string           `json:"instagram_link,omitempty"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
	Category      Category         `json:"category"`
	Galleries     []ProductGallery `json:"galleries"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductGallery struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	PhotoURL  string `json:"photo_url"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateProductRequest is the payload for creating or updating a product.
// Photo URLs come from the external upload provider and are passed through
// as opaque strings.
type CreateProductRequest struct {
	CategoryID    int64    `json:"category_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Stock         int      `json:"stock"`
	MainPhotoURL  string   `json:"main_photo_url"`
	InstagramLink string   `json:"instagram_link,omitempty"`
	GalleryPhotos []string `json:"gallery_photos,omitempty"`
}
