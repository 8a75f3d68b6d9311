package catalog

// Key, date and target columns shared by the properties and transaction sources.
const (
	ParcelID        = "parcelid"
	TransactionDate = "transactiondate"
	LogError        = "logerror"
)

// TextColumns are the raw properties columns that must be read as text rather than type-inferred.
var TextColumns = []string{"propertycountylandusecode", "hashottuborspa", "propertyzoningdesc", "fireplaceflag",
	"taxdelinquencyflag"}

// Properties is the catalog of the parcel properties source.
var Properties = MustNew(
	Entry{Raw: "parcelid", Name: ParcelID, Meaning: "unique identifier of parcels"},
	Entry{Raw: "airconditioningtypeid", Name: "cooling_id", Meaning: "type of cooling system (if any)", Unit: "code 1-13"},
	Entry{Raw: "architecturalstyletypeid", Name: "architecture_style_id", Meaning: "architectural style of the home", Unit: "code 1-27"},
	Entry{Raw: "basementsqft", Name: "basement_sqft", Meaning: "size of the basement", Unit: "sqft"},
	Entry{Raw: "bathroomcnt", Name: "bathroom_cnt", Meaning: "number of bathrooms, including fractional bathrooms", Unit: "count"},
	Entry{Raw: "bedroomcnt", Name: "bedroom_cnt", Meaning: "number of bedrooms", Unit: "count"},
	Entry{Raw: "buildingclasstypeid", Name: "framing_id", Meaning: "building framing type", Unit: "code 1-5"},
	Entry{Raw: "buildingqualitytypeid", Name: "quality_id", Meaning: "building condition from best (lowest) to worst (highest)", Unit: "code"},
	Entry{Raw: "calculatedbathnbr", Name: "bathroom_cnt_calc", Meaning: "number of bathrooms, calculated", Unit: "count"},
	Entry{Raw: "decktypeid", Name: "deck_id", Meaning: "type of deck (if any)", Unit: "code"},
	Entry{Raw: "finishedfloor1squarefeet", Name: "floor1_sqft", Meaning: "finished living area on the first floor", Unit: "sqft"},
	Entry{Raw: "calculatedfinishedsquarefeet", Name: "finished_area_sqft_calc", Meaning: "calculated total finished living area", Unit: "sqft"},
	Entry{Raw: "finishedsquarefeet12", Name: "finished_area_sqft", Meaning: "finished living area", Unit: "sqft"},
	Entry{Raw: "finishedsquarefeet13", Name: "perimeter_area", Meaning: "perimeter living area", Unit: "sqft"},
	Entry{Raw: "finishedsquarefeet15", Name: "total_area", Meaning: "total area", Unit: "sqft"},
	Entry{Raw: "finishedsquarefeet50", Name: "floor1_sqft_unk", Meaning: "finished living area on the first floor, second source", Unit: "sqft"},
	Entry{Raw: "finishedsquarefeet6", Name: "base_total_area", Meaning: "base unfinished and finished area", Unit: "sqft"},
	Entry{Raw: "fips", Name: "fips", Meaning: "Federal Information Processing Standard code", Unit: "code"},
	Entry{Raw: "fireplacecnt", Name: "fireplace_cnt", Meaning: "number of fireplaces in the home (if any)", Unit: "count"},
	Entry{Raw: "fullbathcnt", Name: "bathroom_full_cnt", Meaning: "number of full bathrooms", Unit: "count"},
	Entry{Raw: "garagecarcnt", Name: "garage_cnt", Meaning: "total number of garages", Unit: "count"},
	Entry{Raw: "garagetotalsqft", Name: "garage_sqft", Meaning: "total size of the garages", Unit: "sqft"},
	Entry{Raw: "hashottuborspa", Name: "spa_flag", Meaning: "whether the home has a hot tub or spa", Unit: "flag"},
	Entry{Raw: "heatingorsystemtypeid", Name: "heating_id", Meaning: "type of heating system", Unit: "code 1-25"},
	Entry{Raw: "latitude", Name: "latitude", Meaning: "latitude of the middle of the parcel", Unit: "degrees x 1e6"},
	Entry{Raw: "longitude", Name: "longitude", Meaning: "longitude of the middle of the parcel", Unit: "degrees x 1e6"},
	Entry{Raw: "lotsizesquarefeet", Name: "lot_sqft", Meaning: "area of the lot", Unit: "sqft"},
	Entry{Raw: "poolcnt", Name: "pool_cnt", Meaning: "number of pools on the lot (if any)", Unit: "count"},
	Entry{Raw: "poolsizesum", Name: "pool_total_size", Meaning: "total size of the pools", Unit: "sqft"},
	Entry{Raw: "pooltypeid10", Name: "pool_unk_1", Meaning: "spa or hot tub", Unit: "flag"},
	Entry{Raw: "pooltypeid2", Name: "pool_unk_2", Meaning: "pool with spa or hot tub", Unit: "flag"},
	Entry{Raw: "pooltypeid7", Name: "pool_unk_3", Meaning: "pool without hot tub", Unit: "flag"},
	Entry{Raw: "propertycountylandusecode", Name: "county_landuse_code", Meaning: "county land use code", Unit: "text"},
	Entry{Raw: "propertylandusetypeid", Name: "landuse_type_id", Meaning: "type of land use the property is zoned for", Unit: "code, 25 categories"},
	Entry{Raw: "propertyzoningdesc", Name: "zoning_description", Meaning: "allowed land uses (zoning) for the property", Unit: "text"},
	Entry{Raw: "rawcensustractandblock", Name: "census_1", Meaning: "census tract and block, raw", Unit: "code"},
	Entry{Raw: "regionidcity", Name: "city_id", Meaning: "city in which the property is located (if any)", Unit: "code"},
	Entry{Raw: "regionidcounty", Name: "county_id", Meaning: "county in which the property is located", Unit: "code"},
	Entry{Raw: "regionidneighborhood", Name: "neighborhood_id", Meaning: "neighborhood in which the property is located", Unit: "code"},
	Entry{Raw: "regionidzip", Name: "region_zip", Meaning: "zip code in which the property is located", Unit: "code"},
	Entry{Raw: "roomcnt", Name: "room_cnt", Meaning: "total number of rooms in the principal residence", Unit: "count"},
	Entry{Raw: "storytypeid", Name: "story_id", Meaning: "type of floors in a multi-story house", Unit: "code 1-35"},
	Entry{Raw: "threequarterbathnbr", Name: "bathroom_small_cnt", Meaning: "number of 3/4 bathrooms", Unit: "count"},
	Entry{Raw: "typeconstructiontypeid", Name: "construction_id", Meaning: "type of construction material", Unit: "code 1-18"},
	Entry{Raw: "unitcnt", Name: "unit_cnt", Meaning: "number of units the structure is built into (2=duplex, 3=triplex)", Unit: "count"},
	Entry{Raw: "yardbuildingsqft17", Name: "patio_sqft", Meaning: "patio in yard", Unit: "sqft"},
	Entry{Raw: "yardbuildingsqft26", Name: "storage_sqft", Meaning: "storage shed or building in yard", Unit: "sqft"},
	Entry{Raw: "yearbuilt", Name: "year_built", Meaning: "year the principal residence was built", Unit: "year"},
	Entry{Raw: "numberofstories", Name: "story_cnt", Meaning: "number of stories or levels the home has", Unit: "count"},
	Entry{Raw: "fireplaceflag", Name: "fireplace_flag", Meaning: "whether the home has a fireplace", Unit: "flag"},
	Entry{Raw: "structuretaxvaluedollarcnt", Name: "tax_structure", Meaning: "assessed value of the structure", Unit: "USD"},
	Entry{Raw: "taxvaluedollarcnt", Name: "tax_parcel", Meaning: "total assessed value of the parcel", Unit: "USD"},
	Entry{Raw: "assessmentyear", Name: "tax_year", Meaning: "year of the property tax assessment", Unit: "year"},
	Entry{Raw: "landtaxvaluedollarcnt", Name: "tax_land", Meaning: "assessed value of the land", Unit: "USD"},
	Entry{Raw: "taxamount", Name: "tax_property", Meaning: "total property tax assessed for the year", Unit: "USD"},
	Entry{Raw: "taxdelinquencyflag", Name: "tax_overdue_flag", Meaning: "property taxes are past due", Unit: "flag"},
	Entry{Raw: "taxdelinquencyyear", Name: "tax_overdue_year", Meaning: "year for which the unpaid property taxes were due", Unit: "year"},
	Entry{Raw: "censustractandblock", Name: "census_2", Meaning: "census tract and block", Unit: "code"},
)
