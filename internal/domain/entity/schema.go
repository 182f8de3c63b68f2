package entity

// Canonical column names of the procedures survey CSV
// (行政手続等オンライン化状況調査, fixed 38-column schema).
const (
	ColID             = "手続ID"
	ColMinistry       = "所管府省庁"
	ColName           = "手続名"
	ColLawName        = "法令名"
	ColLawNumber      = "法令番号"
	ColLegalBasis     = "根拠条項号"
	ColType           = "手続類型"
	ColActor          = "手続主体"
	ColReceiver       = "手続の受け手"
	ColViaOrgan       = "経由機関"
	ColAgencyName     = "独立行政法人等の名称"
	ColOfficeType     = "事務区分"
	ColCommonFlag     = "府省共通手続"
	ColExecMinistry   = "実施府省庁"
	ColOnlineStatus   = "オンライン化の実施状況"
	ColOnlinePlan     = "オンライン化の実施予定及び検討時の懸念点"
	ColOnlineDate     = "オンライン化実施時期"
	ColIdentification = "申請等における本人確認手法"
	ColFeeRequired    = "手数料等の納付有無"
	ColFeeMethod      = "手数料等の納付方法"
	ColFeeIncentive   = "手数料等のオンライン納付時の優遇措置"
	ColProcTimeOnline = "処理期間(オンライン)"
	ColProcTimeOther  = "処理期間(非オンライン)"
	ColSystemApply    = "情報システム(申請)"
	ColSystemProcess  = "情報システム(事務処理)"
	ColTotalCount     = "総手続件数"
	ColOnlineCount    = "オンライン手続件数"
	ColOfflineCount   = "非オンライン手続件数"
	ColWrittenInfo    = "申請書等に記載させる情報"
	ColAttachments    = "申請時に添付させる書類"
	ColAttachRemoval  = "添付書類等提出の撤廃/省略状況"
	ColAttachMethod   = "添付書類等の提出方法"
	ColAttachSign     = "添付書類等への電子署名"
	ColAttachFormat   = "添付形式等が定められた規定"
	ColEventPersonal  = "手続が行われるイベント(個人)"
	ColEventCorporate = "手続が行われるイベント(法人)"
	ColProfessions    = "申請に関連する士業"
	ColSubmitOrgan    = "申請を提出する機関"

	// Derived at load time, not part of the source CSV.
	ColOnlineRate = "オンライン化率"
)

// Columns lists the source CSV columns in file order.
var Columns = []string{
	ColID,
	ColMinistry,
	ColName,
	ColLawName,
	ColLawNumber,
	ColLegalBasis,
	ColType,
	ColActor,
	ColReceiver,
	ColViaOrgan,
	ColAgencyName,
	ColOfficeType,
	ColCommonFlag,
	ColExecMinistry,
	ColOnlineStatus,
	ColOnlinePlan,
	ColOnlineDate,
	ColIdentification,
	ColFeeRequired,
	ColFeeMethod,
	ColFeeIncentive,
	ColProcTimeOnline,
	ColProcTimeOther,
	ColSystemApply,
	ColSystemProcess,
	ColTotalCount,
	ColOnlineCount,
	ColOfflineCount,
	ColWrittenInfo,
	ColAttachments,
	ColAttachRemoval,
	ColAttachMethod,
	ColAttachSign,
	ColAttachFormat,
	ColEventPersonal,
	ColEventCorporate,
	ColProfessions,
	ColSubmitOrgan,
}

// ExportColumns is the full column set written by the CSV exporter:
// every source column plus the derived online rate.
var ExportColumns = append(append([]string{}, Columns...), ColOnlineRate)

// NumericColumns are the count columns coerced to non-negative integers at
// load time. Malformed or missing cells become 0 rather than rejecting the
// row; the source dataset is hand-curated and imperfect.
var NumericColumns = map[string]bool{
	ColTotalCount:   true,
	ColOnlineCount:  true,
	ColOfflineCount: true,
}

// MultiValueColumns hold delimiter-joined lists in a single cell and are
// exploded into tokens before aggregation.
var MultiValueColumns = map[string]bool{
	ColWrittenInfo:    true,
	ColAttachments:    true,
	ColAttachRemoval:  true,
	ColAttachMethod:   true,
	ColAttachSign:     true,
	ColEventPersonal:  true,
	ColEventCorporate: true,
	ColProfessions:    true,
	ColSystemApply:    true,
	ColSystemProcess:  true,
	ColSubmitOrgan:    true,
}

// SemicolonColumns are the multi-value columns whose tokens may contain
// commas (system and organ names); only semicolons separate them.
var SemicolonColumns = map[string]bool{
	ColSystemApply:   true,
	ColSystemProcess: true,
	ColSubmitOrgan:   true,
}

// SearchColumns are matched by the unified keyword search (OR across all).
var SearchColumns = []string{
	ColID,
	ColName,
	ColLawName,
	ColLawNumber,
	ColLegalBasis,
	ColMinistry,
	ColType,
	ColActor,
	ColReceiver,
	ColWrittenInfo,
	ColAttachments,
	ColEventPersonal,
	ColEventCorporate,
	ColProfessions,
	ColSystemApply,
	ColSystemProcess,
}

// ListColumns is the compact projection used for paginated listings.
var ListColumns = []string{
	ColID,
	ColName,
	ColMinistry,
	ColLawName,
	ColOnlineStatus,
	ColType,
	ColTotalCount,
	ColOnlineCount,
	ColOnlineRate,
}

// OptionOrders declares the preferred display order of canonical values for
// fields with a known vocabulary. Ordering is presentation only; it never
// affects filtering.
var OptionOrders = map[string][]string{
	ColType: {
		"申請等", "申請等に基づく処分通知等", "申請等に基づかない処分通知等",
		"交付等（民間手続）", "縦覧等", "作成・保存等",
	},
	ColOnlineStatus: {"実施済", "一部実施済", "未実施", "適用除外", "その他"},
	ColActor: {
		"国", "独立行政法人等", "地方等", "国又は独立行政法人等",
		"独立行政法人等又は地方等", "国又は地方等", "国、独立行政法人等又は地方等",
		"国民等", "民間事業者等", "国民等、民間事業者等",
	},
	ColReceiver: {
		"国", "独立行政法人等", "地方等", "国又は独立行政法人等",
		"独立行政法人等又は地方等", "国又は地方等", "国、独立行政法人等又は地方等",
		"国民等", "民間事業者等", "国民等、民間事業者等",
	},
	ColOfficeType: {"自治事務", "第1号法定受託事務", "第2号法定受託事務", "地方の事務でない"},
	ColCommonFlag: {"○（全府省）", "●（一部の府省）", "×（府省共通手続でない)"},
}

// FieldDefs carries the one-line definition of each field, shown alongside
// the value in the detail projection.
var FieldDefs = map[string]string{
	ColMinistry:       "手続の根拠法令（条文）を所管する府省庁。",
	ColName:           "手続の名称。",
	ColLawName:        "手続の根拠となる法令の正式名称。",
	ColLawNumber:      "根拠法令の法令番号。",
	ColLegalBasis:     "根拠条・項・号の番号。",
	ColType:           "1申請等 / 2-1申請等に基づく処分通知等 / 2-2申請等に基づかない処分通知等 / 2-3交付等(民間手続) / 3縦覧等 / 4作成・保存等。",
	ColActor:          "手続を行う主体（国、独立行政法人等、地方等、国民等、民間事業者等 等の組合せを含む）。",
	ColReceiver:       "申請等において最終的に手続を受ける者（国、独立行政法人等、地方等、国民等、民間事業者等 等）。",
	ColViaOrgan:       "法令に基づき申請等の提出時に経由が必要な機関の種別。",
	ColOfficeType:     "地方公共団体が行う事務の区分（自治事務 / 第1号法定受託事務 / 第2号法定受託事務 / 地方の事務でない）。",
	ColCommonFlag:     "全府省共通(○) / 一部府省共通(●) / 非共通(×)。",
	ColExecMinistry:   "当該手続を実施する府省庁（府省共通手続は全回答を列挙）。",
	ColOnlineStatus:   "1実施済 / 2未実施 / 3適用除外 / 4その他 / 5一部実施済。",
	ColOnlinePlan:     "予定または検討時の懸念（制度改正、システム未整備、原本紙等）。",
	ColOnlineDate:     "オンライン化の実施予定年度（2024〜2030以降）。",
	ColIdentification: "押印＋印鑑証明 / 押印 / 署名 / 本人確認書類提示・提出 / その他 / 不要。",
	ColFeeRequired:    "手数料等の有無。",
	ColFeeMethod:      "オフライン（窓口/銀行/ATM/コンビニ等）・オンライン（ペイジー/クレカ/QR等）。",
	ColFeeIncentive:   "オンライン納付による減免の有無。",
	ColProcTimeOnline: "オンライン手続の標準処理期間。",
	ColProcTimeOther:  "非オンライン手続の標準処理期間。",
	ColSystemApply:    "申請等に係るシステム名（受付/申請）。",
	ColSystemProcess:  "申請等を受けた後の事務処理システム名。",
	ColTotalCount:     "令和5年度等の年間総件数（有効数字2桁目安、試算含む）。",
	ColOnlineCount:    "オンラインで実施した件数（該当手続のみ）。",
	ColOfflineCount:   "オンライン以外で実施した件数。",
	ColWrittenInfo:    "申請書記入の必須項目（マイナンバー、法人番号等）。",
	ColAttachments:    "申請時に提出が必須の典型書類（住民票、戸籍、登記事項等）。",
	ColAttachRemoval:  "添付書類撤廃・省略の状況（済/予定/不可/その他）。",
	ColAttachMethod:   "電子/原紙/一部電子等の提出方式。",
	ColAttachSign:     "添付書類の電子署名の要否（不要/一部/全て）。",
	ColAttachFormat:   "法令/告示/システム仕様等の規定有無。",
	ColEventPersonal:  "個人のライフイベント（妊娠、出生、引越し、就職・転職、税金、年金、死亡・相続 等）。",
	ColEventCorporate: "法人のライフイベント（設立、役員変更、採用・退職、入札・契約、移転、合併・廃業 等）。",
	ColProfessions:    "代理申請が可能な士業（弁護士、司法書士、行政書士、税理士、社労士、公認会計士、弁理士 等）。",
	ColSubmitOrgan:    "提出先機関（本府省庁/出先機関/地方公共団体 等）。",
}

// DetailFieldOrder is the display order of the detail projection: every
// descriptive field except the identifier, which callers show separately.
var DetailFieldOrder = []string{
	ColMinistry,
	ColName,
	ColLawName,
	ColLawNumber,
	ColLegalBasis,
	ColType,
	ColActor,
	ColReceiver,
	ColViaOrgan,
	ColOfficeType,
	ColCommonFlag,
	ColExecMinistry,
	ColOnlineStatus,
	ColOnlinePlan,
	ColOnlineDate,
	ColIdentification,
	ColFeeRequired,
	ColFeeMethod,
	ColFeeIncentive,
	ColProcTimeOnline,
	ColProcTimeOther,
	ColSystemApply,
	ColSystemProcess,
	ColTotalCount,
	ColOnlineCount,
	ColOfflineCount,
	ColWrittenInfo,
	ColAttachments,
	ColAttachRemoval,
	ColAttachMethod,
	ColAttachSign,
	ColAttachFormat,
	ColEventPersonal,
	ColEventCorporate,
	ColProfessions,
	ColSubmitOrgan,
	ColOnlineRate,
}

// CountBucket is a named band of 総手続件数 used for range filtering.
// Intervals are half-open [Lo, Hi); the top bucket is unbounded and the
// zero bucket deliberately folds "unknown" (missing count) into 0.
type CountBucket struct {
	Name          string
	Lo            int64
	Hi            int64
	Unbounded     bool
	ZeroOrMissing bool
}

// CountBuckets in ascending order. Bucket names double as the values of the
// count-range filter predicate.
var CountBuckets = []CountBucket{
	{Name: "0件もしくは不明", ZeroOrMissing: true},
	{Name: "1件以上10件未満", Lo: 1, Hi: 10},
	{Name: "10件以上100件未満", Lo: 10, Hi: 100},
	{Name: "100件以上1000件未満", Lo: 100, Hi: 1000},
	{Name: "1000件以上1万件未満", Lo: 1000, Hi: 10000},
	{Name: "1万件以上10万件未満", Lo: 10000, Hi: 100000},
	{Name: "10万件以上100万件未満", Lo: 100000, Hi: 1000000},
	{Name: "100万件以上", Lo: 1000000, Unbounded: true},
}

// BucketByName resolves a count bucket by its display name.
func BucketByName(name string) (CountBucket, bool) {
	for _, b := range CountBuckets {
		if b.Name == name {
			return b, true
		}
	}
	return CountBucket{}, false
}

// Contains reports whether the count value falls into the bucket.
// Missing counts are coerced to 0 at load time, so the zero bucket covers
// both "0件" and "不明".
func (b CountBucket) Contains(v int64) bool {
	if b.ZeroOrMissing {
		return v == 0
	}
	if b.Unbounded {
		return v >= b.Lo
	}
	return v >= b.Lo && v < b.Hi
}

// HasColumn reports whether key names a schema column (including derived).
func HasColumn(key string) bool {
	if key == ColOnlineRate {
		return true
	}
	for _, c := range Columns {
		if c == key {
			return true
		}
	}
	return false
}
