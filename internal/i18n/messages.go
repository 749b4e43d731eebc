package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		// 通用
		"error.bad_request":            "Invalid request parameters",
		"error.unauthorized":           "Please sign in first",
		"error.forbidden":              "You do not have permission to perform this action",
		"error.save_failed":            "Save failed, please try again later",
		"error.date_invalid":           "Invalid date",
		"error.file_missing":           "Please choose a file to upload",
		"error.rate_limited":           "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter is unavailable, please try again later",
		"error.login_too_many":         "Too many login attempts, please retry in %d seconds",
		"error.otp_too_many":           "Too many code requests, please retry in %d seconds",

		// 鉴权
		"error.jwt_secret_missing":          "Authentication is not configured",
		"error.auth_header_missing":         "Missing Authorization header",
		"error.auth_header_invalid":         "Authorization header must use the Bearer scheme",
		"error.token_invalid":               "Session is invalid or has expired",
		"error.token_revoked":               "Session has been revoked, please sign in again",
		"error.login_failed":                "Sign in failed, please try again later",
		"error.admin_login_invalid":         "Incorrect username or password",
		"error.admin_id_invalid":            "Invalid account",
		"error.admin_id_type_invalid":       "Invalid account",
		"error.admin_not_found":             "Account not found",
		"error.admin_fetch_failed":          "Failed to load accounts",
		"error.admin_create_failed":         "Failed to create account",
		"error.admin_update_failed":         "Failed to update account",
		"error.admin_delete_failed":         "Failed to delete account",
		"error.admin_username_exists":       "Username already exists",
		"error.admin_username_invalid":      "Username must be 3-64 characters without spaces",
		"error.admin_delete_protected":      "The built-in administrator cannot be removed",
		"error.admin_delete_self_forbidden": "You cannot delete your own account",
		"error.admin_delete_last_forbidden": "At least one account must remain",
		"error.password_old_invalid":        "Current password is incorrect",
		"error.password_weak":               "Password is too weak",
		"error.password_min_length":         "Password must be at least %d characters",
		"error.password_require_upper":      "Password must contain an uppercase letter",
		"error.password_require_lower":      "Password must contain a lowercase letter",
		"error.password_require_number":     "Password must contain a number",
		"error.password_require_special":    "Password must contain a special character",
		"error.password_contains_username":  "Password must not contain the username",
		"error.authz_fetch_failed":          "Failed to load permissions",
		"error.authz_role_invalid":          "Invalid role",
		"error.authz_policy_invalid":        "Invalid policy",
		"error.authz_role_builtin":          "Built-in roles cannot be deleted or reduced",

		// 图片验证码
		"error.captcha_required":        "Please complete the captcha",
		"error.captcha_invalid":         "Captcha is incorrect or has expired",
		"error.captcha_unavailable":     "Captcha is not enabled",
		"error.captcha_generate_failed": "Failed to generate captcha",
		"error.captcha_verify_failed":   "Failed to verify captcha",

		// 验证码
		"error.contact_required":              "Please enter a phone number or email",
		"error.contact_invalid":               "Enter a valid email or a 10-digit phone number",
		"error.email_invalid":                 "Invalid email address",
		"error.otp_required":                  "Please enter the OTP",
		"error.otp_not_found":                 "OTP not found, please request a new one",
		"error.otp_invalid":                   "Invalid OTP",
		"error.otp_expired":                   "OTP has expired",
		"error.otp_attempts_exceeded":         "Too many wrong OTP attempts, please request a new OTP",
		"error.otp_failed":                    "Failed to send OTP",
		"error.verify_code_required":          "Please enter the verification code",
		"error.verify_code_invalid":           "Invalid verification code",
		"error.verify_code_expired":           "Verification code has expired",
		"error.verify_code_too_frequent":      "Please wait before requesting another code",
		"error.verify_code_attempts_exceeded": "Too many attempts, please request a new code",

		// 访客
		"error.visitor_id_invalid":          "Invalid visitor ID",
		"error.visitor_not_found":           "Visitor not found",
		"error.visitor_not_verified":        "Please verify your phone or email first",
		"error.visitor_fields_missing":      "Required fields are missing",
		"error.visitor_submit_failed":       "Failed to submit visitor details",
		"error.visitor_fetch_failed":        "Failed to load visitor",
		"error.visitor_update_failed":       "Failed to update visitor",
		"error.visitor_approve_failed":      "Failed to approve visitor",
		"error.visitor_reject_failed":       "Failed to reject visitor",
		"error.visitor_already_verified":    "Visitor has already been verified",
		"error.visitor_rejected":            "Visitor has been rejected",
		"error.visitor_card_unavailable":    "Visitor pass is not available yet",
		"error.visitor_status_invalid":      "Invalid visitor status",
		"error.qr_code_required":            "QR code is required",
		"error.qr_format_invalid":           "Invalid QR code format",
		"error.scan_type_invalid":           "Scan type must be entry or exit",
		"error.scan_conflict":               "Visitor status changed, please scan again",
		"error.scan_failed":                 "Scan failed",
		"error.visitor_expired":             "QR code has expired",
		"error.visitor_already_checked_in":  "Visitor has already checked in",
		"error.visitor_already_checked_out": "Visitor has already checked out",
		"error.visitor_not_checked_in":      "Visitor has not checked in",
		"error.visitor_qr_state_invalid":    "QR code is not active",
		"error.visitor_exit_cooldown":       "Exit scanned too soon after entry, please wait",

		// 目录与预约
		"error.company_not_found":         "Company not found",
		"error.department_not_found":      "Department not found",
		"error.designation_not_found":     "Designation not found",
		"error.employee_not_found":        "Employee not found",
		"error.employee_exists":           "An employee with this email or phone already exists",
		"error.purpose_not_found":         "Purpose not found",
		"error.directory_fetch_failed":    "Failed to load directory",
		"error.directory_save_failed":     "Failed to save directory entry",
		"error.appointment_not_found":     "Appointment not found",
		"error.appointment_invalid":       "Invalid appointment details",
		"error.appointment_fetch_failed":  "Failed to load appointments",
		"error.appointment_save_failed":   "Failed to save appointment",
		"error.appointment_lookup_failed": "Failed to look up appointment",
		"error.dashboard_fetch_failed":    "Failed to load dashboard",
		"error.report_fetch_failed":       "Failed to load report",
		"error.report_query_invalid":      "Invalid report filters",

		// 上传
		"error.upload_failed":        "Upload failed",
		"error.upload_too_large":     "File is too large",
		"error.upload_type_invalid":  "File type is not allowed",
		"error.upload_image_invalid": "Invalid image file",

		// 成功提示
		"message.otp_sent":           "OTP sent successfully",
		"message.otp_verified":       "OTP verified successfully",
		"message.visitor_submitted":  "Visitor details submitted, awaiting verification",
		"message.visitor_registered": "Visitor registered successfully",
		"message.visitor_approved":   "Visitor approved successfully",
		"message.visitor_rejected":   "Visitor rejected",
		"message.lookup_code_sent":   "Verification code sent",

		// 邮件与短信
		"email.brand":                     "Visitor Management",
		"email.hello":                     "Hello %s,",
		"email.welcome":                   "Welcome, %s",
		"email.otp.subject":               "Your OTP Code",
		"email.otp.body":                  "Your OTP code is %s. It is valid for a few minutes.",
		"email.lookup_code.subject":       "Your Appointment Verification Code",
		"email.lookup_code.body":          "Use %s to view your appointment details.",
		"email.visitor_review.subject":    "New Visitor: %s - Pending Verification",
		"email.visitor_review.heading":    "New visitor awaiting verification: %s",
		"email.visitor_review.body":       "%s has registered a visit and is waiting for your review.",
		"email.visitor_review.visitor_id": "Visitor ID: %d",
		"email.visitor_review.email":      "Email: %s",
		"email.visitor_review.phone":      "Phone: %s",
		"email.visitor_review.action":     "Review & Verify Visitor",
		"email.visitor_approved.subject":  "Your Visit Has Been Approved",
		"email.visitor_approved.body":     "Your visit has been approved. Show the QR code below at the entrance.",
		"email.visitor_rejected.subject":  "Update on Your Visit Request",
		"email.visitor_rejected.body":     "We are sorry, your visit request was not approved.",
		"email.visitor_rejected.contact":  "Please contact the person you planned to meet for details.",
		"email.appointment.subject":       "Your Appointment Is Scheduled",
		"email.appointment.body":          "Your appointment is scheduled on %s at %s.",
		"sms.otp":                         "Your visitor OTP is %s",
	},
	LocaleZH: {
		"error.bad_request":            "请求参数错误",
		"error.unauthorized":           "请先登录",
		"error.forbidden":              "没有执行该操作的权限",
		"error.save_failed":            "保存失败，请稍后重试",
		"error.date_invalid":           "日期格式错误",
		"error.file_missing":           "请选择要上传的文件",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务不可用，请稍后重试",
		"error.login_too_many":         "登录尝试过多，请 %d 秒后重试",
		"error.otp_too_many":           "验证码请求过多，请 %d 秒后重试",

		"error.jwt_secret_missing":          "未配置登录密钥",
		"error.auth_header_missing":         "缺少 Authorization 请求头",
		"error.auth_header_invalid":         "Authorization 请求头必须使用 Bearer 方案",
		"error.token_invalid":               "登录状态无效或已过期",
		"error.token_revoked":               "登录状态已失效，请重新登录",
		"error.login_failed":                "登录失败，请稍后重试",
		"error.admin_login_invalid":         "用户名或密码错误",
		"error.admin_id_invalid":            "账号无效",
		"error.admin_id_type_invalid":       "账号无效",
		"error.admin_not_found":             "账号不存在",
		"error.admin_fetch_failed":          "获取账号失败",
		"error.admin_create_failed":         "创建账号失败",
		"error.admin_update_failed":         "更新账号失败",
		"error.admin_delete_failed":         "删除账号失败",
		"error.admin_username_exists":       "用户名已存在",
		"error.admin_username_invalid":      "用户名需为 3-64 个字符且不含空格",
		"error.admin_delete_protected":      "内置管理员不可删除",
		"error.admin_delete_self_forbidden": "不能删除当前登录的账号",
		"error.admin_delete_last_forbidden": "至少需要保留一个账号",
		"error.password_old_invalid":        "原密码错误",
		"error.password_weak":               "密码强度不足",
		"error.password_min_length":         "密码长度至少 %d 位",
		"error.password_require_upper":      "密码需包含大写字母",
		"error.password_require_lower":      "密码需包含小写字母",
		"error.password_require_number":     "密码需包含数字",
		"error.password_require_special":    "密码需包含特殊字符",
		"error.password_contains_username":  "密码不能包含账号名",
		"error.authz_fetch_failed":          "获取权限失败",
		"error.authz_role_invalid":          "角色无效",
		"error.authz_policy_invalid":        "策略无效",
		"error.authz_role_builtin":          "预置角色不可删除或撤销默认权限",

		"error.captcha_required":        "请完成图片验证码",
		"error.captcha_invalid":         "图片验证码错误或已过期",
		"error.captcha_unavailable":     "未启用图片验证码",
		"error.captcha_generate_failed": "生成图片验证码失败",
		"error.captcha_verify_failed":   "校验图片验证码失败",

		"error.contact_required":              "请输入手机号或邮箱",
		"error.contact_invalid":               "请输入有效的邮箱或 10 位手机号",
		"error.email_invalid":                 "邮箱格式错误",
		"error.otp_required":                  "请输入验证码",
		"error.otp_not_found":                 "验证码不存在，请重新获取",
		"error.otp_invalid":                   "验证码错误",
		"error.otp_expired":                   "验证码已过期",
		"error.otp_attempts_exceeded":         "验证码错误次数过多，请重新获取",
		"error.otp_failed":                    "验证码发送失败",
		"error.verify_code_required":          "请输入验证码",
		"error.verify_code_invalid":           "验证码错误",
		"error.verify_code_expired":           "验证码已过期",
		"error.verify_code_too_frequent":      "验证码发送过于频繁，请稍后再试",
		"error.verify_code_attempts_exceeded": "尝试次数过多，请重新获取验证码",

		"error.visitor_id_invalid":          "访客 ID 无效",
		"error.visitor_not_found":           "访客不存在",
		"error.visitor_not_verified":        "请先完成手机号或邮箱验证",
		"error.visitor_fields_missing":      "缺少必填字段",
		"error.visitor_submit_failed":       "提交访客信息失败",
		"error.visitor_fetch_failed":        "获取访客信息失败",
		"error.visitor_update_failed":       "更新访客信息失败",
		"error.visitor_approve_failed":      "审核通过失败",
		"error.visitor_reject_failed":       "拒绝访客失败",
		"error.visitor_already_verified":    "访客已审核",
		"error.visitor_rejected":            "访客已被拒绝",
		"error.visitor_card_unavailable":    "访客通行证尚不可用",
		"error.visitor_status_invalid":      "访客状态无效",
		"error.qr_code_required":            "请提供二维码",
		"error.qr_format_invalid":           "二维码格式错误",
		"error.scan_type_invalid":           "扫码类型必须为 entry 或 exit",
		"error.scan_conflict":               "访客状态已变化，请重新扫码",
		"error.scan_failed":                 "扫码失败",
		"error.visitor_expired":             "二维码已过期",
		"error.visitor_already_checked_in":  "访客已签入",
		"error.visitor_already_checked_out": "访客已签出",
		"error.visitor_not_checked_in":      "访客尚未签入",
		"error.visitor_qr_state_invalid":    "二维码未激活",
		"error.visitor_exit_cooldown":       "签入后过快扫码签出，请稍候",

		"error.company_not_found":         "公司不存在",
		"error.department_not_found":      "部门不存在",
		"error.designation_not_found":     "岗位不存在",
		"error.employee_not_found":        "员工不存在",
		"error.employee_exists":           "该邮箱或手机号的员工已存在",
		"error.purpose_not_found":         "来访目的不存在",
		"error.directory_fetch_failed":    "获取组织数据失败",
		"error.directory_save_failed":     "保存组织数据失败",
		"error.appointment_not_found":     "预约不存在",
		"error.appointment_invalid":       "预约信息无效",
		"error.appointment_fetch_failed":  "获取预约失败",
		"error.appointment_save_failed":   "保存预约失败",
		"error.appointment_lookup_failed": "查询预约失败",
		"error.dashboard_fetch_failed":    "获取仪表盘数据失败",
		"error.report_fetch_failed":       "获取报表失败",
		"error.report_query_invalid":      "报表筛选条件无效",

		"error.upload_failed":        "上传失败",
		"error.upload_too_large":     "文件过大",
		"error.upload_type_invalid":  "不支持的文件类型",
		"error.upload_image_invalid": "图片文件无效",

		"message.otp_sent":           "验证码已发送",
		"message.otp_verified":       "验证码校验成功",
		"message.visitor_submitted":  "访客信息已提交，等待审核",
		"message.visitor_registered": "访客登记成功",
		"message.visitor_approved":   "访客审核已通过",
		"message.visitor_rejected":   "已拒绝该访客",
		"message.lookup_code_sent":   "验证码已发送",

		"email.brand":                     "访客管理系统",
		"email.hello":                     "%s，您好：",
		"email.welcome":                   "欢迎您，%s",
		"email.otp.subject":               "您的验证码",
		"email.otp.body":                  "您的验证码为 %s，几分钟内有效。",
		"email.lookup_code.subject":       "预约查询验证码",
		"email.lookup_code.body":          "使用验证码 %s 查看您的预约详情。",
		"email.visitor_review.subject":    "新访客：%s - 待审核",
		"email.visitor_review.heading":    "新访客待审核：%s",
		"email.visitor_review.body":       "%s 已登记来访，等待您审核。",
		"email.visitor_review.visitor_id": "访客 ID：%d",
		"email.visitor_review.email":      "邮箱：%s",
		"email.visitor_review.phone":      "手机号：%s",
		"email.visitor_review.action":     "审核访客",
		"email.visitor_approved.subject":  "您的来访申请审核已通过",
		"email.visitor_approved.body":     "您的来访申请已通过，请在入口出示下方二维码。",
		"email.visitor_rejected.subject":  "您的来访申请未通过",
		"email.visitor_rejected.body":     "很抱歉，您的来访申请未获通过。",
		"email.visitor_rejected.contact":  "如有疑问请联系您要拜访的人员。",
		"email.appointment.subject":       "您的预约已确认",
		"email.appointment.body":          "您的预约时间为 %s %s。",
		"sms.otp":                         "您的访客验证码为 %s",
	},
	LocaleTW: {
		"error.bad_request":            "請求參數錯誤",
		"error.unauthorized":           "請先登入",
		"error.forbidden":              "沒有執行該操作的權限",
		"error.save_failed":            "儲存失敗，請稍後重試",
		"error.date_invalid":           "日期格式錯誤",
		"error.file_missing":           "請選擇要上傳的檔案",
		"error.rate_limited":           "請求過於頻繁，請 %d 秒後重試",
		"error.rate_limit_unavailable": "限流服務不可用，請稍後重試",
		"error.login_too_many":         "登入嘗試過多，請 %d 秒後重試",
		"error.otp_too_many":           "驗證碼請求過多，請 %d 秒後重試",

		"error.jwt_secret_missing":          "未設定登入密鑰",
		"error.auth_header_missing":         "缺少 Authorization 請求標頭",
		"error.auth_header_invalid":         "Authorization 請求標頭必須使用 Bearer 方案",
		"error.token_invalid":               "登入狀態無效或已過期",
		"error.token_revoked":               "登入狀態已失效，請重新登入",
		"error.login_failed":                "登入失敗，請稍後重試",
		"error.admin_login_invalid":         "使用者名稱或密碼錯誤",
		"error.admin_id_invalid":            "帳號無效",
		"error.admin_id_type_invalid":       "帳號無效",
		"error.admin_not_found":             "帳號不存在",
		"error.admin_fetch_failed":          "取得帳號失敗",
		"error.admin_create_failed":         "建立帳號失敗",
		"error.admin_update_failed":         "更新帳號失敗",
		"error.admin_delete_failed":         "刪除帳號失敗",
		"error.admin_username_exists":       "使用者名稱已存在",
		"error.admin_username_invalid":      "使用者名稱需為 3-64 個字元且不含空格",
		"error.admin_delete_protected":      "內建管理員不可刪除",
		"error.admin_delete_self_forbidden": "不能刪除目前登入的帳號",
		"error.admin_delete_last_forbidden": "至少需要保留一個帳號",
		"error.password_old_invalid":        "原密碼錯誤",
		"error.password_weak":               "密碼強度不足",
		"error.password_min_length":         "密碼長度至少 %d 位",
		"error.password_require_upper":      "密碼需包含大寫字母",
		"error.password_require_lower":      "密碼需包含小寫字母",
		"error.password_require_number":     "密碼需包含數字",
		"error.password_require_special":    "密碼需包含特殊字元",
		"error.password_contains_username":  "密碼不能包含帳號名稱",
		"error.authz_fetch_failed":          "取得權限失敗",
		"error.authz_role_invalid":          "角色無效",
		"error.authz_policy_invalid":        "策略無效",
		"error.authz_role_builtin":          "預設角色不可刪除或撤銷預設權限",

		"error.captcha_required":        "請完成圖片驗證碼",
		"error.captcha_invalid":         "圖片驗證碼錯誤或已過期",
		"error.captcha_unavailable":     "未啟用圖片驗證碼",
		"error.captcha_generate_failed": "產生圖片驗證碼失敗",
		"error.captcha_verify_failed":   "驗證圖片驗證碼失敗",

		"error.contact_required":              "請輸入手機號碼或電子郵件",
		"error.contact_invalid":               "請輸入有效的電子郵件或 10 位手機號碼",
		"error.email_invalid":                 "電子郵件格式錯誤",
		"error.otp_required":                  "請輸入驗證碼",
		"error.otp_not_found":                 "驗證碼不存在，請重新取得",
		"error.otp_invalid":                   "驗證碼錯誤",
		"error.otp_expired":                   "驗證碼已過期",
		"error.otp_attempts_exceeded":         "驗證碼錯誤次數過多，請重新取得",
		"error.otp_failed":                    "驗證碼發送失敗",
		"error.verify_code_required":          "請輸入驗證碼",
		"error.verify_code_invalid":           "驗證碼錯誤",
		"error.verify_code_expired":           "驗證碼已過期",
		"error.verify_code_too_frequent":      "驗證碼發送過於頻繁，請稍後再試",
		"error.verify_code_attempts_exceeded": "嘗試次數過多，請重新取得驗證碼",

		"error.visitor_id_invalid":          "訪客 ID 無效",
		"error.visitor_not_found":           "訪客不存在",
		"error.visitor_not_verified":        "請先完成手機號碼或電子郵件驗證",
		"error.visitor_fields_missing":      "缺少必填欄位",
		"error.visitor_submit_failed":       "提交訪客資料失敗",
		"error.visitor_fetch_failed":        "取得訪客資料失敗",
		"error.visitor_update_failed":       "更新訪客資料失敗",
		"error.visitor_approve_failed":      "審核通過失敗",
		"error.visitor_reject_failed":       "拒絕訪客失敗",
		"error.visitor_already_verified":    "訪客已審核",
		"error.visitor_rejected":            "訪客已被拒絕",
		"error.visitor_card_unavailable":    "訪客通行證尚不可用",
		"error.visitor_status_invalid":      "訪客狀態無效",
		"error.qr_code_required":            "請提供 QR Code",
		"error.qr_format_invalid":           "QR Code 格式錯誤",
		"error.scan_type_invalid":           "掃描類型必須為 entry 或 exit",
		"error.scan_conflict":               "訪客狀態已變更，請重新掃描",
		"error.scan_failed":                 "掃描失敗",
		"error.visitor_expired":             "QR Code 已過期",
		"error.visitor_already_checked_in":  "訪客已簽入",
		"error.visitor_already_checked_out": "訪客已簽出",
		"error.visitor_not_checked_in":      "訪客尚未簽入",
		"error.visitor_qr_state_invalid":    "QR Code 未啟用",
		"error.visitor_exit_cooldown":       "簽入後過快掃描簽出，請稍候",

		"error.company_not_found":         "公司不存在",
		"error.department_not_found":      "部門不存在",
		"error.designation_not_found":     "職稱不存在",
		"error.employee_not_found":        "員工不存在",
		"error.employee_exists":           "該電子郵件或手機號碼的員工已存在",
		"error.purpose_not_found":         "來訪目的不存在",
		"error.directory_fetch_failed":    "取得組織資料失敗",
		"error.directory_save_failed":     "儲存組織資料失敗",
		"error.appointment_not_found":     "預約不存在",
		"error.appointment_invalid":       "預約資料無效",
		"error.appointment_fetch_failed":  "取得預約失敗",
		"error.appointment_save_failed":   "儲存預約失敗",
		"error.appointment_lookup_failed": "查詢預約失敗",
		"error.dashboard_fetch_failed":    "取得儀表板資料失敗",
		"error.report_fetch_failed":       "取得報表失敗",
		"error.report_query_invalid":      "報表篩選條件無效",

		"error.upload_failed":        "上傳失敗",
		"error.upload_too_large":     "檔案過大",
		"error.upload_type_invalid":  "不支援的檔案類型",
		"error.upload_image_invalid": "圖片檔案無效",

		"message.otp_sent":           "驗證碼已發送",
		"message.otp_verified":       "驗證碼驗證成功",
		"message.visitor_submitted":  "訪客資料已提交，等待審核",
		"message.visitor_registered": "訪客登記成功",
		"message.visitor_approved":   "訪客審核已通過",
		"message.visitor_rejected":   "已拒絕該訪客",
		"message.lookup_code_sent":   "驗證碼已發送",

		"email.brand":                     "訪客管理系統",
		"email.hello":                     "%s，您好：",
		"email.welcome":                   "歡迎您，%s",
		"email.otp.subject":               "您的驗證碼",
		"email.otp.body":                  "您的驗證碼為 %s，幾分鐘內有效。",
		"email.lookup_code.subject":       "預約查詢驗證碼",
		"email.lookup_code.body":          "使用驗證碼 %s 查看您的預約詳情。",
		"email.visitor_review.subject":    "新訪客：%s - 待審核",
		"email.visitor_review.heading":    "新訪客待審核：%s",
		"email.visitor_review.body":       "%s 已登記來訪，等待您審核。",
		"email.visitor_review.visitor_id": "訪客 ID：%d",
		"email.visitor_review.email":      "電子郵件：%s",
		"email.visitor_review.phone":      "手機號碼：%s",
		"email.visitor_review.action":     "審核訪客",
		"email.visitor_approved.subject":  "您的來訪申請審核已通過",
		"email.visitor_approved.body":     "您的來訪申請已通過，請在入口出示下方 QR Code。",
		"email.visitor_rejected.subject":  "您的來訪申請未通過",
		"email.visitor_rejected.body":     "很抱歉，您的來訪申請未獲通過。",
		"email.visitor_rejected.contact":  "如有疑問請聯絡您要拜訪的人員。",
		"email.appointment.subject":       "您的預約已確認",
		"email.appointment.body":          "您的預約時間為 %s %s。",
		"sms.otp":                         "您的訪客驗證碼為 %s",
	},
}
