package imagegen

const (
	responseFormatURL      = "url"
	subjectTypeCharacter   = "character"
	statusCodeSuccess      = 0
	defaultUpstreamMessage = "unknown error"
)

// DefaultReferenceImageURL is the subject reference sent with every request
// unless REFERENCE_IMAGE_URL overrides it.
const DefaultReferenceImageURL = "https://cdn.jsdelivr.net/gh/SumeLabs/clawra@main/assets/clawra.png"

type imageGenerationRequest struct {
	Model            string             `json:"model"`
	Prompt           string             `json:"prompt"`
	AspectRatio      string             `json:"aspect_ratio"`
	ResponseFormat   string             `json:"response_format"`
	SubjectReference []subjectReference `json:"subject_reference"`
}

type subjectReference struct {
	Type      string `json:"type"`
	ImageFile string `json:"image_file"`
}

type imageGenerationResponse struct {
	BaseResp baseResp `json:"base_resp"`
	Data     *struct {
		ImageURLs []string `json:"image_urls"`
	} `json:"data"`
}

type baseResp struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
}
