package response

// Operation keys for the success-message table. Handlers pass a key; the
// boundary resolves the fixed message when assembling the envelope.
const (
	OpRegister           = "auth.register"
	OpLogin              = "auth.login"
	OpCurrentUser        = "auth.me"
	OpChangePassword     = "auth.change-password"
	OpGetProfile         = "profile.get"
	OpUpdateProfile      = "profile.update"
	OpListUsers          = "users.list"
	OpGetUser            = "users.get"
	OpCreateUser         = "users.create"
	OpUpdateUser         = "users.update"
	OpUpdateUserStatus   = "users.update-status"
	OpCreateCategory     = "categories.create"
	OpListCategories     = "categories.list"
	OpUpdateCategory     = "categories.update"
	OpCreateSurvey       = "surveys.create"
	OpListSurveys        = "surveys.list"
	OpGetSurvey          = "surveys.get"
	OpUpdateSurvey       = "surveys.update"
	OpUpdatePermissions  = "surveys.permissions.update"
	OpGetPermissions     = "surveys.permissions.get"
	OpCreateQuestion     = "questions.create"
	OpListQuestions      = "questions.list"
	OpGetQuestion        = "questions.get"
	OpUpdateQuestion     = "questions.update"
	OpSubmitResponse     = "responses.submit"
	OpCreateOption       = "options.create"
	OpListOptions        = "options.list"
	OpUpdateOption       = "options.update"
	OpCreateTeam         = "teams.create"
	OpListTeams          = "teams.list"
	OpAddTeamMember      = "teams.members.add"
	OpRemoveTeamMember   = "teams.members.remove"
	OpListNotifications  = "notifications.list"
	OpUnreadCount        = "notifications.unread-count"
	OpMarkRead           = "notifications.mark-read"
	OpMarkAllRead        = "notifications.mark-all-read"
	OpUploadFile         = "files.upload"
	OpFileInfo           = "files.info"
	OpFileShareLink      = "files.share-link"
	OpDashboard          = "dashboard.get"
	OpSurveyOverview     = "statistics.overview"
	OpSystemMetrics      = "system.metrics"
)

// successMessages is the per-operation metadata table consulted by the
// boundary layer.
var successMessages = map[string]string{
	OpRegister:          "Đăng ký tài khoản thành công",
	OpLogin:             "Đăng nhập thành công",
	OpCurrentUser:       "Lấy thông tin người dùng hiện tại",
	OpChangePassword:    "Đổi mật khẩu thành công",
	OpGetProfile:        "Lấy thông tin hồ sơ",
	OpUpdateProfile:     "Cập nhật hồ sơ thành công",
	OpListUsers:         "Lấy danh sách người dùng",
	OpGetUser:           "Lấy thông tin người dùng",
	OpCreateUser:        "Tạo người dùng thành công",
	OpUpdateUser:        "Cập nhật người dùng thành công",
	OpUpdateUserStatus:  "Cập nhật trạng thái người dùng thành công",
	OpCreateCategory:    "Tạo danh mục thành công",
	OpListCategories:    "Lấy danh sách danh mục",
	OpUpdateCategory:    "Cập nhật danh mục thành công",
	OpCreateSurvey:      "Tạo khảo sát thành công",
	OpListSurveys:       "Lấy danh sách khảo sát",
	OpGetSurvey:         "Lấy thông tin khảo sát",
	OpUpdateSurvey:      "Cập nhật khảo sát thành công",
	OpUpdatePermissions: "Cập nhật quyền chia sẻ thành công",
	OpGetPermissions:    "Lấy danh sách quyền chia sẻ",
	OpCreateQuestion:    "Tạo câu hỏi thành công",
	OpListQuestions:     "Lấy danh sách câu hỏi",
	OpGetQuestion:       "Lấy thông tin câu hỏi",
	OpUpdateQuestion:    "Cập nhật câu hỏi thành công",
	OpSubmitResponse:    "Gửi phản hồi thành công",
	OpCreateOption:      "Tạo tùy chọn thành công",
	OpListOptions:       "Lấy danh sách tùy chọn",
	OpUpdateOption:      "Cập nhật tùy chọn thành công",
	OpCreateTeam:        "Tạo team thành công",
	OpListTeams:         "Lấy danh sách team",
	OpAddTeamMember:     "Thêm thành viên thành công",
	OpRemoveTeamMember:  "Xóa thành viên thành công",
	OpListNotifications: "Lấy danh sách thông báo",
	OpUnreadCount:       "Lấy số thông báo chưa đọc",
	OpMarkRead:          "Đánh dấu thông báo đã đọc",
	OpMarkAllRead:       "Đánh dấu tất cả thông báo đã đọc",
	OpUploadFile:        "Tải tệp lên thành công",
	OpFileInfo:          "Lấy thông tin tệp",
	OpFileShareLink:     "Tạo liên kết chia sẻ tệp thành công",
	OpDashboard:         "Lấy tổng quan dashboard",
	OpSurveyOverview:    "Lấy thống kê khảo sát",
	OpSystemMetrics:     "Lấy số liệu hệ thống",
}

// Message returns the fixed success message for an operation key, or empty
// when none is declared.
func Message(operation string) string {
	return successMessages[operation]
}
