package script

import "fmt"

// The interpreter's base opcode space starts at 0x8000; the low 10 bits
// select the operation and the high-byte flag bits mark PUSH operand
// types. Opcodes the disassembler treats specially:
const (
	OpNoop  uint16 = 0x8000
	OpPush  uint16 = 0x8001
	OpJump  uint16 = 0x8004
	OpCall  uint16 = 0x8005
	OpExit  uint16 = 0x800E
	OpIf    uint16 = 0x802F
	OpWhile uint16 = 0x8030
)

// pushBase is the low-10-bit value identifying PUSH regardless of the
// high-byte operand flags.
const pushBase = 0x001

// High-byte flag bits selecting a PUSH operand's interpretation.
const (
	flagInt           = 0x40
	flagFloat         = 0x20
	flagStaticString  = 0x10
	flagDynamicString = 0x08
)

// OpcodeName returns the mnemonic for op, resolving the low 10 bits
// against the 0x8000 base so typed PUSH variants (0xC001, 0xA001, ...)
// all report PUSH. Unknown opcodes format as UNKNOWN_XXXX.
func OpcodeName(op uint16) string {
	if name, ok := opcodeNames[0x8000|op&0x3FF]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_%04X", op)
}

var opcodeNames = map[uint16]string{
	0x8000: "NOOP",
	0x8001: "PUSH",
	0x8002: "ENTER_CRITICAL_SECTION",
	0x8003: "LEAVE_CRITICAL_SECTION",
	0x8004: "JUMP",
	0x8005: "CALL",
	0x8006: "CALL_AT",
	0x8007: "CALL_WHEN",
	0x8008: "CALLSTART",
	0x8009: "EXEC",
	0x800A: "SPAWN",
	0x800B: "FORK",
	0x800C: "A_TO_D",
	0x800D: "D_TO_A",
	0x800E: "EXIT",
	0x800F: "DETACH",
	0x8010: "EXIT_PROGRAM",
	0x8011: "STOP_PROGRAM",
	0x8012: "FETCH_GLOBAL",
	0x8013: "STORE_GLOBAL",
	0x8014: "FETCH_EXTERNAL",
	0x8015: "STORE_EXTERNAL",
	0x8016: "EXPORT_VARIABLE",
	0x8017: "EXPORT_PROCEDURE",
	0x8018: "SWAP",
	0x8019: "SWAPA",
	0x801A: "POP",
	0x801B: "DUP",
	0x801C: "POP_RETURN",
	0x801D: "POP_EXIT",
	0x801E: "POP_ADDRESS",
	0x801F: "POP_FLAGS",
	0x8020: "POP_FLAGS_RETURN",
	0x8021: "POP_FLAGS_EXIT",
	0x8022: "POP_FLAGS_RETURN_EXTERN",
	0x8023: "POP_FLAGS_EXIT_EXTERN",
	0x8024: "POP_FLAGS_RETURN_VAL_EXTERN",
	0x8025: "POP_FLAGS_RETURN_VAL_EXIT",
	0x8026: "POP_FLAGS_RETURN_VAL_EXIT_EXTERN",
	0x8027: "CHECK_PROCEDURE_ARGUMENT_COUNT",
	0x8028: "LOOKUP_PROCEDURE_BY_NAME",
	0x8029: "POP_BASE",
	0x802A: "POP_TO_BASE",
	0x802B: "PUSH_BASE",
	0x802C: "SET_GLOBAL",
	0x802D: "FETCH_PROCEDURE_ADDRESS",
	0x802E: "DUMP",
	0x802F: "IF",
	0x8030: "WHILE",
	0x8031: "STORE",
	0x8032: "FETCH",
	0x8033: "EQUAL",
	0x8034: "NOT_EQUAL",
	0x8035: "LESS_THAN_EQUAL",
	0x8036: "GREATER_THAN_EQUAL",
	0x8037: "LESS_THAN",
	0x8038: "GREATER_THAN",
	0x8039: "ADD",
	0x803A: "SUB",
	0x803B: "MUL",
	0x803C: "DIV",
	0x803D: "MOD",
	0x803E: "AND",
	0x803F: "OR",
	0x8040: "BITWISE_AND",
	0x8041: "BITWISE_OR",
	0x8042: "BITWISE_XOR",
	0x8043: "BITWISE_NOT",
	0x8044: "FLOOR",
	0x8045: "NOT",
	0x8046: "NEGATE",
	0x8047: "WAIT",
	0x8048: "CANCEL",
	0x8049: "CANCEL_ALL",
	0x804A: "START_CRITICAL",
	0x804B: "END_CRITICAL",
	0x804C: "SAYQUIT",
	0x804D: "SAYEND",
	0x804E: "SAYSTART",
	0x804F: "SAYSTARTPOS",
	0x8050: "SAYREPLYTITLE",
	0x8051: "SAYGOTOREPLY",
	0x8052: "SAYREPLY",
	0x8053: "SAYOPTION",
	0x8054: "SAYMESSAGE",
	0x8055: "SAYREPLYWINDOW",
	0x8056: "SAYOPTIONWINDOW",
	0x8057: "SAYBORDER",
	0x8058: "SAYSCROLLUP",
	0x8059: "SAYSCROLLDOWN",
	0x805A: "SAYSETSPACING",
	0x805B: "SAYOPTIONCOLOR",
	0x805C: "SAYREPLYCOLOR",
	0x805D: "SAYRESTART",
	0x805E: "SAYGETLASTPOS",
	0x805F: "SAYREPLYFLAGS",
	0x8060: "SAYOPTIONFLAGS",
	0x8061: "SAYMESSAGETIMEOUT",
	0x8062: "CREATEWIN",
	0x8063: "DELETEWIN",
	0x8064: "SELECTWIN",
	0x8065: "RESIZEWIN",
	0x8066: "SCALEWIN",
	0x8067: "SHOWWIN",
	0x8068: "FILLWIN",
	0x8069: "FILLRECT",
	0x806A: "FILLWIN3X3",
	0x806B: "DISPLAY",
	0x806C: "DISPLAYGFX",
	0x806D: "DISPLAYRAW",
	0x806E: "LOADPALETTETABLE",
	0x806F: "FADEIN",
	0x8070: "FADEOUT",
	0x8071: "GOTOXY",
	0x8072: "PRINT",
	0x8073: "FORMAT",
	0x8074: "PRINTRECT",
	0x8075: "SETFONT",
	0x8076: "SETTEXTFLAGS",
	0x8077: "SETTEXTCOLOR",
	0x8078: "SETHIGHLIGHTCOLOR",
	0x8079: "STOPMOVIE",
	0x807A: "PLAYMOVIE",
	0x807B: "MOVIEFLAGS",
	0x807C: "PLAYMOVIERECT",
	0x807F: "ADDREGION",
	0x8080: "ADDREGIONFLAG",
	0x8081: "ADDREGIONPROC",
	0x8082: "ADDREGIONRIGHTPROC",
	0x8083: "DELETEREGION",
	0x8084: "ACTIVATEREGION",
	0x8085: "CHECKREGION",
	0x8086: "ADDBUTTON",
	0x8087: "ADDBUTTONTEXT",
	0x8088: "ADDBUTTONFLAG",
	0x8089: "ADDBUTTONGFX",
	0x808A: "ADDBUTTONPROC",
	0x808B: "ADDBUTTONRIGHTPROC",
	0x808C: "DELETEBUTTON",
	0x808D: "HIDEMOUSE",
	0x808E: "SHOWMOUSE",
	0x808F: "MOUSESHAPE",
	0x8090: "REFRESHMOUSE",
	0x8091: "SETGLOBALMOUSEFUNC",
	0x8092: "ADDNAMEDEVENT",
	0x8093: "ADDNAMEDHANDLER",
	0x8094: "CLEARNAMED",
	0x8095: "SIGNALNAMED",
	0x8096: "ADDKEY",
	0x8097: "DELETEKEY",
	0x8098: "SOUNDPLAY",
	0x8099: "SOUNDPAUSE",
	0x809A: "SOUNDRESUME",
	0x809B: "SOUNDSTOP",
	0x809C: "SOUNDREWIND",
	0x809D: "SOUNDDELETE",
	0x809E: "SETONEOPTPAUSE",
	0x809F: "SELECTFILELIST",
	0x80A0: "TOKENIZE",
	0x80A1: "GIVE_EXP_POINTS",
	0x80A2: "SCR_RETURN",
	0x80A3: "PLAY_SFX",
	0x80A4: "OBJ_NAME",
	0x80A5: "SFX_BUILD_OPEN_NAME",
	0x80A6: "GET_PC_STAT",
	0x80A7: "TILE_CONTAINS_PID_OBJ",
	0x80A8: "SET_MAP_START",
	0x80A9: "OVERRIDE_MAP_START",
	0x80AA: "HAS_SKILL",
	0x80AB: "USING_SKILL",
	0x80AC: "ROLL_VS_SKILL",
	0x80AD: "SKILL_CONTEST",
	0x80AE: "DO_CHECK",
	0x80AF: "IS_SUCCESS",
	0x80B0: "IS_CRITICAL",
	0x80B1: "HOW_MUCH",
	0x80B2: "REACTION_ROLL",
	0x80B3: "REACTION_INFLUENCE",
	0x80B4: "RANDOM",
	0x80B5: "ROLL_DICE",
	0x80B6: "MOVE_TO",
	0x80B7: "CREATE_OBJECT_SID",
	0x80B8: "DISPLAY_MSG",
	0x80B9: "SCRIPT_OVERRIDES",
	0x80BA: "OBJ_IS_CARRYING_OBJ_PID",
	0x80BB: "TILE_CONTAINS_OBJ_PID",
	0x80BC: "SELF_OBJ",
	0x80BD: "SOURCE_OBJ",
	0x80BE: "TARGET_OBJ",
	0x80BF: "DUDE_OBJ",
	0x80C0: "OBJ_BEING_USED_WITH",
	0x80C1: "LOCAL_VAR",
	0x80C2: "SET_LOCAL_VAR",
	0x80C3: "MAP_VAR",
	0x80C4: "SET_MAP_VAR",
	0x80C5: "GLOBAL_VAR",
	0x80C6: "SET_GLOBAL_VAR",
	0x80C7: "SCRIPT_ACTION",
	0x80C8: "OBJ_TYPE",
	0x80C9: "OBJ_ITEM_SUBTYPE",
	0x80CA: "GET_CRITTER_STAT",
	0x80CB: "SET_CRITTER_STAT",
	0x80CC: "ANIMATE_STAND_OBJ",
	0x80CD: "ANIMATE_STAND_REVERSE_OBJ",
	0x80CE: "ANIMATE_MOVE_OBJ_TO_TILE",
	0x80CF: "ANIMATE_JUMP",
	0x80D0: "ATTACK",
	0x80D1: "MAKE_DAYTIME",
	0x80D2: "TILE_DISTANCE",
	0x80D3: "TILE_DISTANCE_OBJS",
	0x80D4: "TILE_NUM",
	0x80D5: "TILE_NUM_IN_DIRECTION",
	0x80D6: "PICKUP_OBJ",
	0x80D7: "DROP_OBJ",
	0x80D8: "ADD_OBJ_TO_INVEN",
	0x80D9: "RM_OBJ_FROM_INVEN",
	0x80DA: "WIELD_OBJ_CRITTER",
	0x80DB: "USE_OBJ",
	0x80DC: "OBJ_CAN_SEE_OBJ",
	0x80DD: "ATTACK_COMPLEX",
	0x80DE: "START_GDIALOG",
	0x80DF: "END_DIALOGUE",
	0x80E0: "DIALOGUE_REACTION",
	0x80E1: "TURN_OFF_OBJS_IN_AREA",
	0x80E2: "TURN_ON_OBJS_IN_AREA",
	0x80E3: "SET_OBJ_VISIBILITY",
	0x80E4: "LOAD_MAP",
	0x80E5: "BARTER_OFFER",
	0x80E6: "BARTER_ASKING",
	0x80E7: "ANIM_BUSY",
	0x80E8: "CRITTER_HEAL",
	0x80E9: "SET_LIGHT_LEVEL",
	0x80EA: "GAME_TIME",
	0x80EB: "GAME_TIME_IN_SECONDS",
	0x80EC: "ELEVATION",
	0x80ED: "KILL_CRITTER",
	0x80EE: "KILL_CRITTER_TYPE",
	0x80EF: "CRITTER_DAMAGE",
	0x80F0: "ADD_TIMER_EVENT",
	0x80F1: "RM_TIMER_EVENT",
	0x80F2: "GAME_TICKS",
	0x80F3: "HAS_TRAIT",
	0x80F4: "DESTROY_OBJECT",
	0x80F5: "OBJ_CAN_HEAR_OBJ",
	0x80F6: "GAME_TIME_HOUR",
	0x80F7: "FIXED_PARAM",
	0x80F8: "TILE_IS_VISIBLE",
	0x80F9: "DIALOGUE_SYSTEM_ENTER",
	0x80FA: "ACTION_BEING_USED",
	0x80FB: "CRITTER_STATE",
	0x80FC: "GAME_TIME_ADVANCE",
	0x80FD: "RADIATION_INC",
	0x80FE: "RADIATION_DEC",
	0x80FF: "CRITTER_ATTEMPT_PLACEMENT",
	0x8100: "OBJ_PID",
	0x8101: "CUR_MAP_INDEX",
	0x8102: "CRITTER_ADD_TRAIT",
	0x8103: "CRITTER_RM_TRAIT",
	0x8104: "PROTO_DATA",
	0x8105: "MESSAGE_STR",
	0x8106: "CRITTER_INVEN_OBJ",
	0x8107: "OBJ_SET_LIGHT_LEVEL",
	0x8108: "WORLD_MAP",
	0x8109: "TOWN_MAP",
	0x810A: "FLOAT_MSG",
	0x810B: "METARULE",
	0x810C: "ANIM",
	0x810D: "OBJ_CARRYING_PID_OBJ",
	0x810E: "REG_ANIM_FUNC",
	0x810F: "REG_ANIM_ANIMATE",
	0x8110: "REG_ANIM_ANIMATE_REVERSE",
	0x8111: "REG_ANIM_OBJ_MOVE_TO_OBJ",
	0x8112: "REG_ANIM_OBJ_RUN_TO_OBJ",
	0x8113: "REG_ANIM_OBJ_MOVE_TO_TILE",
	0x8114: "REG_ANIM_OBJ_RUN_TO_TILE",
	0x8115: "PLAY_GMOVIE",
	0x8116: "ADD_MULT_OBJS_TO_INVEN",
	0x8117: "RM_MULT_OBJS_FROM_INVEN",
	0x8118: "GET_MONTH",
	0x8119: "GET_DAY",
	0x811A: "EXPLOSION",
	0x811B: "DAYS_SINCE_VISITED",
	0x811C: "GSAY_START",
	0x811D: "GSAY_END",
	0x811E: "GSAY_REPLY",
	0x811F: "GSAY_OPTION",
	0x8120: "GSAY_MESSAGE",
	0x8121: "GIQ_OPTION",
	0x8122: "POISON",
	0x8123: "GET_POISON",
	0x8124: "PARTY_ADD",
	0x8125: "PARTY_REMOVE",
	0x8126: "REG_ANIM_ANIMATE_FOREVER",
	0x8127: "CRITTER_INJURE",
	0x8128: "COMBAT_IS_INITIALIZED",
	0x8129: "GDIALOG_BARTER",
	0x812A: "DIFFICULTY_LEVEL",
	0x812B: "RUNNING_BURNING_GUY",
	0x812C: "INVEN_UNWIELD",
	0x812D: "OBJ_IS_LOCKED",
	0x812E: "OBJ_LOCK",
	0x812F: "OBJ_UNLOCK",
	0x8130: "OBJ_IS_OPEN",
	0x8131: "OBJ_OPEN",
	0x8132: "OBJ_CLOSE",
	0x8133: "GAME_UI_DISABLE",
	0x8134: "GAME_UI_ENABLE",
	0x8135: "GAME_UI_IS_DISABLED",
	0x8136: "GFADE_OUT",
	0x8137: "GFADE_IN",
	0x8138: "ITEM_CAPS_TOTAL",
	0x8139: "ITEM_CAPS_ADJUST",
	0x813A: "ANIM_ACTION_FRAME",
	0x813B: "REG_ANIM_PLAY_SFX",
	0x813C: "CRITTER_MOD_SKILL",
	0x813D: "SFX_BUILD_CHAR_NAME",
	0x813E: "SFX_BUILD_AMBIENT_NAME",
	0x813F: "SFX_BUILD_INTERFACE_NAME",
	0x8140: "SFX_BUILD_ITEM_NAME",
	0x8141: "SFX_BUILD_WEAPON_NAME",
	0x8142: "SFX_BUILD_SCENERY_NAME",
	0x8143: "ATTACK_SETUP",
	0x8144: "DESTROY_MULT_OBJS",
	0x8145: "USE_OBJ_ON_OBJ",
	0x8146: "ENDGAME_SLIDESHOW",
	0x8147: "MOVE_OBJ_INVEN_TO_OBJ",
	0x8148: "ENDGAME_MOVIE",
	0x8149: "OBJ_ART_FID",
	0x814A: "ART_ANIM",
	0x814B: "PARTY_MEMBER_OBJ",
	0x814C: "ROTATION_TO_TILE",
	0x814D: "JAM_LOCK",
	0x814E: "GDIALOG_SET_BARTER_MOD",
	0x814F: "COMBAT_DIFFICULTY",
	0x8150: "OBJ_ON_SCREEN",
	0x8151: "CRITTER_IS_FLEEING",
	0x8152: "CRITTER_SET_FLEE_STATE",
	0x8153: "TERMINATE_COMBAT",
	0x8154: "DEBUG_MSG",
	0x8155: "CRITTER_STOP_ATTACKING",
}
