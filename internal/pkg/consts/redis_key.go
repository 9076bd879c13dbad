package consts

const (
	DashboardKey      = "dashboard:summary:"
	TokenBlacklistKey = "auth:blacklist:"
)

const (
	PromotionFetchJobLock = "lock:job:promotion_fetch"
	MaterialSyncJobLock   = "lock:job:material_sync"
)
