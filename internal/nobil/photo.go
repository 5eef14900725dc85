package nobil

// photoBaseURL hosts Nobil's station images.
const photoBaseURL = "https://www.nobil.no/img/ladestasjonbilder/"

// thumbnailMaxSize is the largest render size (px) served from the
// thumbnail variant.
const thumbnailMaxSize = 50

// Photo is the Nobil implementation of domain.ChargerPhoto. URL construction
// is a pure formatting rule; no network access is involved.
type Photo struct {
	id string
}

// NewPhoto wraps a Nobil image filename.
func NewPhoto(id string) Photo {
	return Photo{id: id}
}

// ID returns the raw image filename.
func (p Photo) ID() string {
	return p.id
}

// URL builds the image URL for the requested render size: sizes from 1 up to
// 50 px get the thumbnail-prefixed filename, everything else the full image.
func (p Photo) URL(sizeHint int) string {
	if sizeHint >= 1 && sizeHint <= thumbnailMaxSize {
		return photoBaseURL + "tn_" + p.id
	}
	return photoBaseURL + p.id
}
