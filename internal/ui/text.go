package ui

import "github.com/five82/asana/internal/pose"

// textKey names a piece of UI copy.
type textKey int

const (
	txtGuest textKey = iota
	txtOffline
	txtLoading
	txtNoPoses
	txtLoadFailed
	txtRetrying
	txtAll
	txtMore
	txtEnd
	txtSearch
	txtSearchPlaceholder
	txtDifficulty
	txtEffect
	txtCaution
	txtImage
	txtVideo
	txtTags
	txtBookmarked
	txtNotBookmarked
	txtLoginRequired
	txtBookmarkAdded
	txtBookmarkRemoved
	txtBookmarkFailed
	txtPoseNotFound
	txtLogin
	txtSignup
	txtUsername
	txtPassword
	txtConfirm
	txtLoginSuccess
	txtSignupSuccess
	txtLoggedOut
	txtLoggedInAs
	txtSwitchToSignup
	txtSwitchToLogin
	txtSubmitting
)

// copyText holds zh and en strings per key.
var copyText = map[textKey][2]string{
	txtGuest:             {"訪客", "guest"},
	txtOffline:           {"離線", "OFFLINE"},
	txtLoading:           {"載入中...", "Loading..."},
	txtNoPoses:           {"沒有找到瑜伽動作", "No poses found"},
	txtLoadFailed:        {"載入失敗", "Failed to load poses"},
	txtRetrying:          {"按 r 重試", "press r to retry"},
	txtAll:               {"全部", "All"},
	txtMore:              {"按 m 載入更多", "press m to load more"},
	txtEnd:               {"已顯示全部", "End of list"},
	txtSearch:            {"搜尋", "Search"},
	txtSearchPlaceholder: {"輸入名稱或功效", "name or effect"},
	txtDifficulty:        {"難度", "Difficulty"},
	txtEffect:            {"功效", "Benefits"},
	txtCaution:           {"注意事項", "Cautions"},
	txtImage:             {"圖片", "Image"},
	txtVideo:             {"影片", "Video"},
	txtTags:              {"效果", "Effects"},
	txtBookmarked:        {"★ 已收藏", "★ Bookmarked"},
	txtNotBookmarked:     {"☆ 未收藏", "☆ Not bookmarked"},
	txtLoginRequired:     {"請先登入才能收藏", "Please log in to bookmark poses"},
	txtBookmarkAdded:     {"已添加到收藏", "Added to bookmarks"},
	txtBookmarkRemoved:   {"已從收藏中移除", "Removed from bookmarks"},
	txtBookmarkFailed:    {"操作失敗，請稍後再試", "Operation failed, please try again later"},
	txtPoseNotFound:      {"找不到該瑜伽動作", "Pose not found"},
	txtLogin:             {"登入", "Log in"},
	txtSignup:            {"註冊", "Sign up"},
	txtUsername:          {"用戶名", "Username"},
	txtPassword:          {"密碼", "Password"},
	txtConfirm:           {"確認密碼", "Confirm password"},
	txtLoginSuccess:      {"登入成功", "Logged in"},
	txtSignupSuccess:     {"註冊成功", "Account created"},
	txtLoggedOut:         {"已登出", "Logged out"},
	txtLoggedInAs:        {"目前登入", "Logged in as"},
	txtSwitchToSignup:    {"還沒有帳號？按 ctrl+s 註冊", "No account? ctrl+s to sign up"},
	txtSwitchToLogin:     {"已有帳號？按 ctrl+s 登入", "Have an account? ctrl+s to log in"},
	txtSubmitting:        {"送出中...", "Submitting..."},
}

func text(k textKey, lang pose.Language) string {
	pair := copyText[k]
	if lang == pose.LangEN {
		return pair[1]
	}
	return pair[0]
}
