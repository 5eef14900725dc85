package domain

// ChargerPhoto is a provider-hosted photo of a station. Each provider
// contributes its own implementation with its own URL construction rule;
// consumers never branch on the provider.
type ChargerPhoto interface {
	// ID is the provider's identifier for the image, typically a filename.
	ID() string

	// URL builds the image URL for a requested render size in pixels
	// (the larger of the target width and height). A size hint of 0 asks
	// for the original image.
	URL(sizeHint int) string
}
