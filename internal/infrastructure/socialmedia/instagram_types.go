package socialmedia

// InstagramUserResponse is a business profile payload from the Graph API
type InstagramUserResponse struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Name              string `json:"name"`
	Biography         string `json:"biography"`
	Website           string `json:"website"`
	ProfilePictureURL string `json:"profile_picture_url"`
	FollowersCount    int64  `json:"followers_count"`
	FollowsCount      int64  `json:"follows_count"`
	MediaCount        int64  `json:"media_count"`
}

// instagramMedia is one media item of a user's feed
type instagramMedia struct {
	ID            string `json:"id"`
	Caption       string `json:"caption"`
	MediaType     string `json:"media_type"`
	MediaURL      string `json:"media_url"`
	Permalink     string `json:"permalink"`
	Timestamp     string `json:"timestamp"`
	LikeCount     int64  `json:"like_count"`
	CommentsCount int64  `json:"comments_count"`
}

// InstagramMediaResponse is a media listing from the Graph API
type InstagramMediaResponse struct {
	Data []instagramMedia `json:"data"`
}

// InstagramErrorResponse is the Graph API error envelope
type InstagramErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// instagramScrapedAccount is the nested account block of a scraped record
type instagramScrapedAccount struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	FollowersCount int    `json:"followersCount"`
	ProfilePicURL  string `json:"profilePicUrl"`
	Biography      string `json:"biography"`
	ProfileURL     string `json:"profileUrl"`
}

// InstagramScrapedItem is one scraped shoppable-post record as produced
// by the hosted bulk scraper dataset
type InstagramScrapedItem struct {
	ProductID   string                  `json:"productId"`
	Title       string                  `json:"title"`
	Price       string                  `json:"price"`
	Currency    string                  `json:"currency"`
	SoldCount   int                     `json:"soldCount"`
	Rating      string                  `json:"rating"`
	ReviewCount int                     `json:"reviewCount"`
	Category    string                  `json:"category"`
	Description string                  `json:"description"`
	ImageURL    string                  `json:"imageUrl"`
	PostURL     string                  `json:"postUrl"`
	CostOfGoods float64                 `json:"costOfGoods"`
	Account     instagramScrapedAccount `json:"account"`
}
