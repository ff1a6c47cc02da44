package socialmedia

// tiktokUser is the account identity block of a user detail payload
type tiktokUser struct {
	ID           string `json:"id"`
	UniqueID     string `json:"uniqueId"`
	SecUID       string `json:"secUid"`
	Nickname     string `json:"nickname"`
	Signature    string `json:"signature"`
	Verified     bool   `json:"verified"`
	AvatarMedium string `json:"avatarMedium"`
	AvatarLarger string `json:"avatarLarger"`
}

// tiktokUserStats is the audience stats block of a user detail payload
type tiktokUserStats struct {
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
	HeartCount     int64 `json:"heartCount"`
	VideoCount     int64 `json:"videoCount"`
}

type tiktokUserInfo struct {
	User  tiktokUser      `json:"user"`
	Stats tiktokUserStats `json:"stats"`
}

// TikTokUserDetailResponse is the response of the user detail endpoint.
// A missing userInfo block means the account does not exist.
type TikTokUserDetailResponse struct {
	UserInfo *tiktokUserInfo `json:"userInfo"`
}

// tiktokPostStats holds per-post engagement counters
type tiktokPostStats struct {
	PlayCount    int64 `json:"playCount"`
	DiggCount    int64 `json:"diggCount"`
	CommentCount int64 `json:"commentCount"`
	ShareCount   int64 `json:"shareCount"`
}

type tiktokVideo struct {
	PlayAddr     string `json:"playAddr"`
	DownloadAddr string `json:"downloadAddr"`
	Cover        string `json:"cover"`
}

// tiktokPost is one item of a popular-posts listing
type tiktokPost struct {
	ID         string          `json:"id"`
	Desc       string          `json:"desc"`
	CreateTime int64           `json:"createTime"`
	Stats      tiktokPostStats `json:"stats"`
	Video      tiktokVideo     `json:"video"`
}

type tiktokPostsData struct {
	ItemList []tiktokPost `json:"itemList"`
	HasMore  bool         `json:"hasMore"`
	Cursor   string       `json:"cursor"`
}

// TikTokPopularPostsResponse is the response of the popular-posts endpoint
type TikTokPopularPostsResponse struct {
	Data *tiktokPostsData `json:"data"`
}

// tiktokShopSeller is the nested seller block of a scraped shop item
type tiktokShopSeller struct {
	SellerID    string `json:"sellerId"`
	Name        string `json:"name"`
	Rating      string `json:"rating"`
	ReviewCount int    `json:"reviewCount"`
	SoldCount   int    `json:"soldCount"`
	ShopURL     string `json:"shopUrl"`
	AvatarURL   string `json:"avatarUrl"`
}

// TikTokShopItem is one scraped TikTok Shop product record as produced
// by the hosted bulk scraper dataset
type TikTokShopItem struct {
	ProductID   string           `json:"productId"`
	Title       string           `json:"title"`
	Price       string           `json:"price"`
	Currency    string           `json:"currency"`
	SoldCount   int              `json:"soldCount"`
	Rating      string           `json:"rating"`
	ReviewCount int              `json:"reviewCount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	ImageURL    string           `json:"imageUrl"`
	ProductURL  string           `json:"productUrl"`
	CostOfGoods float64          `json:"costOfGoods"`
	Seller      tiktokShopSeller `json:"seller"`
}
