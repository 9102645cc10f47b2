package solana

const SysvarClockAddrStr = "SysvarC1ock11111111111111111111111111111111"

var SysvarClockAddr = MustAddress(SysvarClockAddrStr)

const SysvarEpochScheduleAddrStr = "SysvarEpochSchedu1e111111111111111111111111"

var SysvarEpochScheduleAddr = MustAddress(SysvarEpochScheduleAddrStr)

const SysvarFeesAddrStr = "SysvarFees111111111111111111111111111111111"

var SysvarFeesAddr = MustAddress(SysvarFeesAddrStr)

const SysvarInstructionsAddrStr = "Sysvar1nstructions1111111111111111111111111"

var SysvarInstructionsAddr = MustAddress(SysvarInstructionsAddrStr)

const SysvarRecentBlockHashesAddrStr = "SysvarRecentB1ockHashes11111111111111111111"

var SysvarRecentBlockHashesAddr = MustAddress(SysvarRecentBlockHashesAddrStr)

const SysvarRentAddrStr = "SysvarRent111111111111111111111111111111111"

var SysvarRentAddr = MustAddress(SysvarRentAddrStr)

const SysvarRewardsAddrStr = "SysvarRewards111111111111111111111111111111"

var SysvarRewardsAddr = MustAddress(SysvarRewardsAddrStr)

const SysvarSlotHashesAddrStr = "SysvarS1otHashes111111111111111111111111111"

var SysvarSlotHashesAddr = MustAddress(SysvarSlotHashesAddrStr)

const SysvarSlotHistoryAddrStr = "SysvarS1otHistory11111111111111111111111111"

var SysvarSlotHistoryAddr = MustAddress(SysvarSlotHistoryAddrStr)

const SysvarStakeHistoryAddrStr = "SysvarStakeHistory1111111111111111111111111"

var SysvarStakeHistoryAddr = MustAddress(SysvarStakeHistoryAddrStr)

const SysvarEpochRewardsAddrStr = "SysvarEpochRewards1111111111111111111111111"

var SysvarEpochRewardsAddr = MustAddress(SysvarEpochRewardsAddrStr)

const SysvarLastRestartSlotAddrStr = "SysvarLastRestartS1ot1111111111111111111111"

var SysvarLastRestartSlotAddr = MustAddress(SysvarLastRestartSlotAddrStr)
