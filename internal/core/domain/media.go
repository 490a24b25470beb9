package domain

type Banner struct {
	ID       int64
	ImageURL string
	Title    string
	Subtitle string
}

type Vendor struct {
	ID      int64
	LogoURL string
}
