package enum

type KVStoreType string
type CacheType string
type GameSource string

const (
	KVStoreTypeBadger KVStoreType = "badger"
	KVStoreTypeConsul KVStoreType = "consul"
)

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
	CacheTypeNone   CacheType = "none"
)

const (
	GameSourceBatch  GameSource = "batch"
	GameSourceManual GameSource = "manual"
)
