package model

// SearchResult is a Product augmented with the relevance the recommendation
// service assigned to it for one query. It is never persisted.
type SearchResult struct {
	Product
	RelevanceScore float64 `json:"relevanceScore"`
	Explanation    string  `json:"explanation"`
}

// RecommendationResponse is the wire shape the recommendation service is
// instructed to return. ProductID arrives as a string and is coerced to the
// numeric catalog identifier during the join.
type RecommendationResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

type Recommendation struct {
	ProductID      string  `json:"productId"`
	RelevanceScore float64 `json:"relevanceScore"`
	Explanation    string  `json:"explanation"`
}
