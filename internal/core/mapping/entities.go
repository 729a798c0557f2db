package mapping

import "strings"

// Fee kinds as seen by clients. The backend stores the same fact as the
// boolean batBuoc.
const (
	FeeMandatory = "MANDATORY"
	FeeVoluntary = "VOLUNTARY"
)

var feeType = &Codec{
	Decode: func(v any) any {
		if b, ok := v.(bool); ok && b {
			return FeeMandatory
		}
		return FeeVoluntary
	},
	Encode: func(v any) any {
		s, _ := v.(string)
		return strings.EqualFold(strings.TrimSpace(s), FeeMandatory)
	},
}

func id() Field { return Field{Canonical: "id", Wire: "id", Kind: KindRef} }

func same(key string, kind Kind) Field {
	return Field{Canonical: key, Wire: key, Kind: kind}
}

var Household = &Table{
	Entity: "household",
	Fields: []Field{
		id(),
		{Canonical: "ownerName", Wire: "chuHo", Kind: KindString, Rules: "required"},
		{Canonical: "numMembers", Wire: "soThanhVien", Kind: KindInt, Rules: "gte=0"},
		{Canonical: "phoneNumber", Wire: "soDienThoai", Kind: KindString},
		{Canonical: "active", Wire: "hoatDong", Kind: KindBool},
		same("soHoKhau", KindString),
		same("soNha", KindString),
		same("duong", KindString),
		same("phuong", KindString),
		same("quan", KindString),
		same("ngayLamHoKhau", KindString),
	},
}

var Person = &Table{
	Entity: "person",
	Fields: []Field{
		id(),
		{Canonical: "fullName", Wire: "hoTen", Kind: KindString, Rules: "required"},
		{Canonical: "nickname", Wire: "biDanh", Kind: KindString},
		{Canonical: "dateOfBirth", Wire: "ngaySinh", Kind: KindString},
		{Canonical: "gender", Wire: "gioiTinh", Kind: KindString},
		{Canonical: "placeOfBirth", Wire: "noiSinh", Kind: KindString},
		{Canonical: "placeOfOrigin", Wire: "nguyenQuan", Kind: KindString},
		{Canonical: "currentAddress", Wire: "diaChiHienNay", Kind: KindString},
		{Canonical: "idCardNumber", Wire: "soCMT", Kind: KindString},
		{Canonical: "idCardIssueDate", Wire: "ngayCap", Kind: KindString},
		{Canonical: "idCardIssuePlace", Wire: "noiCap", Kind: KindString},
		{Canonical: "ethnicity", Wire: "danToc", Kind: KindString},
		{Canonical: "religion", Wire: "tonGiao", Kind: KindString},
		{Canonical: "nationality", Wire: "quocTich", Kind: KindString},
		{Canonical: "occupation", Wire: "ngheNghiep", Kind: KindString},
		{Canonical: "workPlace", Wire: "noiLamViec", Kind: KindString},
		{Canonical: "status", Wire: "trangThai", Kind: KindString},
	},
}

var Fee = &Table{
	Entity: "fee",
	Fields: []Field{
		id(),
		{Canonical: "name", Wire: "tenKhoanThu", Kind: KindString, Rules: "required"},
		{Canonical: "type", Wire: "batBuoc", Kind: KindEnum, Codec: feeType, Rules: "oneof=MANDATORY VOLUNTARY"},
		{Canonical: "amount", Wire: "soTien", Kind: KindFloat, Rules: "gte=0"},
		{Canonical: "dueDate", Wire: "thoiHan", Kind: KindString},
		{Canonical: "description", Wire: "ghiChu", Kind: KindString},
		{Canonical: "active", Wire: "hoatDong", Kind: KindBool},
		same("ngayTao", KindString),
	},
}

var Payment = &Table{
	Entity: "payment",
	Fields: []Field{
		id(),
		{Canonical: "householdId", Wire: "hoKhau.id", Aliases: []string{"hoKhauId"}, Kind: KindRef, Rules: "required"},
		{Canonical: "feeId", Wire: "khoanThu.id", Aliases: []string{"khoanThuId"}, Kind: KindRef, Rules: "required"},
		{Canonical: "paymentDate", Wire: "ngayNop", Kind: KindString},
		{Canonical: "amount", Wire: "tongTien", Kind: KindFloat, Rules: "gte=0"},
		{Canonical: "amountPaid", Wire: "soTien", Kind: KindFloat, Rules: "gte=0"},
		{Canonical: "verified", Wire: "daXacNhan", Kind: KindBool},
		{Canonical: "notes", Wire: "ghiChu", Kind: KindString},
		{Canonical: "payerName", Wire: "nguoiNop", Kind: KindString},
	},
}

var Vehicle = &Table{
	Entity: "vehicle",
	Fields: []Field{
		id(),
		{Canonical: "licensePlate", Wire: "bienSoXe", Kind: KindString, Rules: "required"},
		{Canonical: "vehicleType", Wire: "loaiXe", Kind: KindString},
		{Canonical: "brand", Wire: "hangXe", Kind: KindString},
		{Canonical: "model", Wire: "mauXe", Kind: KindString},
		{Canonical: "year", Wire: "namSanXuat", Kind: KindInt},
		{Canonical: "color", Wire: "mauSac", Kind: KindString},
		{Canonical: "householdId", Wire: "hoKhauId", Aliases: []string{"hoKhau.id"}, Kind: KindRef},
		{Canonical: "notes", Wire: "ghiChu", Kind: KindString},
	},
}

var UtilityBill = &Table{
	Entity: "utility_bill",
	Fields: []Field{
		id(),
		{Canonical: "serviceType", Wire: "loaiDichVu", Kind: KindString, Rules: "required"},
		{Canonical: "month", Wire: "thang", Kind: KindInt, Rules: "gte=0,lte=12"},
		{Canonical: "year", Wire: "nam", Kind: KindInt},
		{Canonical: "amount", Wire: "soTien", Aliases: []string{"tongTien"}, WriteAliases: true, Kind: KindFloat, Rules: "gte=0"},
		{Canonical: "unit", Wire: "donViTinh", Kind: KindString},
		{Canonical: "newReading", Wire: "chiSoMoi", Kind: KindFloat},
		{Canonical: "oldReading", Wire: "chiSoCu", Kind: KindFloat},
		{Canonical: "householdId", Wire: "hoKhauId", Aliases: []string{"hoKhau.id"}, Kind: KindRef},
		{Canonical: "notes", Wire: "ghiChu", Kind: KindString},
	},
}

// TemporaryResidence reads the legacy {personId, thoiGian, noiDungDeNghi}
// keys only as fallbacks; it always writes the document shape.
var TemporaryResidence = &Table{
	Entity: "temporary_residence",
	Fields: []Field{
		id(),
		{Canonical: "documentNumber", Wire: "maGiay", Kind: KindString},
		{Canonical: "documentType", Wire: "loaiGiay", Kind: KindString, Rules: "required"},
		{Canonical: "startDate", Wire: "tuNgay", Aliases: []string{"thoiGian"}, Kind: KindString},
		{Canonical: "endDate", Wire: "denNgay", Kind: KindString},
		{Canonical: "reason", Wire: "lyDo", Aliases: []string{"noiDungDeNghi"}, Kind: KindString},
		{Canonical: "personId", Wire: "nhanKhauId", Aliases: []string{"personId", "nhanKhau.id"}, Kind: KindRef, Rules: "required"},
	},
}

var tables = []*Table{Household, Person, Fee, Payment, Vehicle, UtilityBill, TemporaryResidence}

// Tables returns every entity table.
func Tables() []*Table {
	out := make([]*Table, len(tables))
	copy(out, tables)
	return out
}

// ByEntity finds a table by its entity name.
func ByEntity(entity string) (*Table, bool) {
	for _, t := range tables {
		if t.Entity == entity {
			return t, true
		}
	}
	return nil, false
}
